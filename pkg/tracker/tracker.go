package tracker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/olimci/followdiff/pkg/archive"
	"github.com/olimci/followdiff/pkg/baseline"
	"github.com/olimci/followdiff/pkg/digest"
	"github.com/olimci/followdiff/pkg/notify"
	"github.com/olimci/followdiff/pkg/relationship"
	log "github.com/sirupsen/logrus"
)

var ErrNoUpload = errors.New("no upload to save as baseline")

// Result is everything derived from one upload.
type Result struct {
	ArchiveName string        `json:"archive"`
	ArchiveSize int64         `json:"archiveSize"`
	Archive     digest.Digest `json:"-"`
	EntryCount  int           `json:"entries"`

	Following relationship.List `json:"following"`
	Followers relationship.List `json:"followers"`

	// Diff is nil when only one of the two exports had entries.
	Diff *relationship.Diff `json:"diff,omitempty"`

	// Baseline is the snapshot Changes were computed against, or the one
	// that was just saved when AutoSaved is set.
	Baseline *baseline.Snapshot `json:"-"`

	// BaselineTimestamp is Baseline.CapturedAt in epoch milliseconds, zero
	// when there is no baseline or it carries no capture time.
	BaselineTimestamp int64                 `json:"baselineTimestamp,omitempty"`
	Changes           *relationship.Changes `json:"changes,omitempty"`
	AutoSaved         bool                  `json:"autoSaved"`
	SameArchive       bool                  `json:"sameArchive"`

	Status string `json:"status,omitempty"`
}

func (r *Result) setBaseline(snap baseline.Snapshot) {
	r.Baseline = &snap
	if !snap.CapturedAt.IsZero() {
		r.BaselineTimestamp = snap.CapturedAt.UnixMilli()
	}
}

type upload struct {
	followers relationship.List
	following relationship.List
	archive   digest.Digest
}

// Session processes uploads against one baseline store. Only one upload
// runs at a time; concurrent calls fail with ErrBusy.
type Session struct {
	baselines    *baseline.Store
	board        *notify.Board
	autoBaseline bool

	busy atomic.Bool

	mu   sync.Mutex
	last *upload
}

type Option func(*Session)

// WithAutoBaseline controls whether the first upload without a stored
// baseline is saved as the baseline. Enabled by default.
func WithAutoBaseline(enabled bool) Option {
	return func(s *Session) {
		s.autoBaseline = enabled
	}
}

func NewSession(baselines *baseline.Store, board *notify.Board, opts ...Option) *Session {
	if board == nil {
		board = notify.NewBoard(notify.DefaultTTL)
	}
	s := &Session{
		baselines:    baselines,
		board:        board,
		autoBaseline: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks an upload's name and size before any parsing.
func Validate(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".zip") {
		return fmt.Errorf("%s: %w", filepath.Base(name), ErrInvalidFileType)
	}
	if size > MaxArchiveSize {
		return &FileTooLargeError{Size: size}
	}
	return nil
}

// Upload reads an account export archive, classifies the current
// relationships and compares them with the stored baseline. Without a
// baseline the upload becomes the first one.
func (s *Session) Upload(ctx context.Context, name string, data []byte) (Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer s.busy.Store(false)

	if err := Validate(name, int64(len(data))); err != nil {
		return Result{}, err
	}

	table, err := archive.Open(data)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", filepath.Base(name), err)
	}
	if table.Empty() {
		return Result{}, fmt.Errorf("open %s: %w", filepath.Base(name), ErrEmptyArchive)
	}

	following, err := readExport(table, archive.FollowingPath, relationship.ParseFollowing)
	if err != nil {
		return Result{}, err
	}
	followers, err := readExport(table, archive.FollowersPath, relationship.ParseFollowers)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ArchiveName: filepath.Base(name),
		ArchiveSize: int64(len(data)),
		Archive:     digest.Of(data),
		EntryCount:  table.Len(),
		Following:   following,
		Followers:   followers,
	}
	log.Debugf("read %s: %d entries, %d following, %d followers", res.ArchiveName, res.EntryCount, len(following), len(followers))

	switch {
	case len(following) == 0 && len(followers) == 0:
		return Result{}, ErrMissingExpectedFiles
	case len(following) == 0 || len(followers) == 0:
		log.Debug("only one relationship export has entries, skipping diff")
		return res, nil
	}

	diff := relationship.Compare(following, followers)
	res.Diff = &diff
	s.remember(upload{followers: followers, following: following, archive: res.Archive})

	if snap, ok := s.baselines.Load(ctx); ok {
		changes := relationship.DetectChanges(followers, following, snap.Reference())
		res.setBaseline(snap)
		res.Changes = &changes
		res.SameArchive = snap.Archive.Equal(res.Archive)
		return res, nil
	}

	if !s.autoBaseline {
		return res, nil
	}

	if !s.baselines.Save(ctx, followers, following, res.Archive) {
		res.Status = s.post(notify.BaselineSaveFailed)
		return res, nil
	}
	if snap, ok := s.baselines.Load(ctx); ok {
		res.setBaseline(snap)
	}
	res.AutoSaved = true
	res.Status = s.post(notify.FirstBaselineSaved)
	return res, nil
}

// SaveBaseline replaces the stored baseline with the last successful upload.
func (s *Session) SaveBaseline(ctx context.Context) (baseline.Snapshot, error) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		return baseline.Snapshot{}, ErrNoUpload
	}

	if !s.baselines.Save(ctx, last.followers, last.following, last.archive) {
		s.post(notify.BaselineSaveFailed)
		return baseline.Snapshot{}, ErrStorageWriteFailure
	}

	snap, ok := s.baselines.Load(ctx)
	if !ok {
		s.post(notify.BaselineSaveFailed)
		return baseline.Snapshot{}, ErrStorageWriteFailure
	}
	s.post(notify.BaselineSaved)
	return snap, nil
}

// ClearBaseline deletes the stored baseline; the next upload is treated as
// the first one.
func (s *Session) ClearBaseline(ctx context.Context) error {
	if err := s.baselines.Clear(ctx); err != nil {
		return err
	}
	s.post(notify.BaselineCleared)
	return nil
}

// Baseline returns the stored baseline, if any.
func (s *Session) Baseline(ctx context.Context) (baseline.Snapshot, bool) {
	return s.baselines.Load(ctx)
}

// Status returns the current transient status message.
func (s *Session) Status() (string, bool) {
	return s.board.Current()
}

func (s *Session) remember(u upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &u
}

func (s *Session) post(msg string) string {
	s.board.Post(msg)
	return msg
}

func readExport(table *archive.Table, path string, parse func([]byte) (relationship.List, error)) (relationship.List, error) {
	entry, ok := table.Lookup(path)
	if !ok {
		log.Debugf("%s not found in archive", path)
		return nil, nil
	}

	data, err := entry.Bytes()
	if err != nil {
		return nil, err
	}

	list, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, path, err)
	}
	return list, nil
}
