package tracker

import (
	"errors"
	"fmt"

	"github.com/olimci/followdiff/pkg/archive"
)

// MaxArchiveSize is the largest accepted upload, in bytes.
const MaxArchiveSize = 1 << 20

var (
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrInvalidArchive       = archive.ErrInvalidArchive
	ErrEmptyArchive         = archive.ErrEmptyArchive
	ErrMissingExpectedFiles = errors.New("expected export files not found")
	ErrStorageWriteFailure  = errors.New("baseline could not be saved")
	ErrBusy                 = errors.New("an upload is already being processed")
)

// FileTooLargeError carries the size of a rejected upload.
type FileTooLargeError struct {
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("File is too large (%.2fMB). Maximum size is 1MB", float64(e.Size)/(1024*1024))
}

func (e *FileTooLargeError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// Message renders err the way it is shown to the user.
func Message(err error) string {
	var tooLarge *FileTooLargeError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &tooLarge):
		return tooLarge.Error()
	case errors.Is(err, ErrInvalidFileType):
		return "Please upload a ZIP file"
	case errors.Is(err, ErrEmptyArchive):
		return "The ZIP file is empty"
	case errors.Is(err, ErrInvalidArchive):
		return "Failed to read ZIP file. Please ensure it's a valid Instagram export ZIP archive"
	case errors.Is(err, ErrMissingExpectedFiles):
		return "Could not find Instagram data files (following.json and followers_1.json) in the expected location"
	case errors.Is(err, ErrStorageWriteFailure):
		return "Failed to save baseline"
	case errors.Is(err, ErrBusy):
		return "Another upload is still being processed"
	default:
		return err.Error()
	}
}
