package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Locations of the relationship exports inside an account data archive.
const (
	FollowingPath = "connections/followers_and_following/following.json"
	FollowersPath = "connections/followers_and_following/followers_1.json"
)

var (
	ErrInvalidArchive = errors.New("not a valid zip archive")
	ErrEmptyArchive   = errors.New("archive is empty")
)

// Table indexes the regular entries of an opened archive by path.
type Table struct {
	entries []Entry
	byPath  map[string]int
}

// Entry is a single non-directory member of the archive.
// Content is decompressed only when Bytes or Text is called.
type Entry struct {
	Path string
	file *zip.File
}

// Open reads the zip central directory from data.
func Open(data []byte) (*Table, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	t := &Table{
		entries: make([]Entry, 0, len(r.File)),
		byPath:  make(map[string]int, len(r.File)),
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if _, dup := t.byPath[f.Name]; dup {
			continue
		}
		t.byPath[f.Name] = len(t.entries)
		t.entries = append(t.entries, Entry{Path: f.Name, file: f})
	}

	return t, nil
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Empty reports whether the archive has no regular entries.
func (t *Table) Empty() bool {
	return len(t.entries) == 0
}

// Entries returns the regular entries in archive order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Lookup finds an entry by exact relative path.
func (t *Table) Lookup(path string) (Entry, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Size is the uncompressed size recorded in the archive.
func (e Entry) Size() uint64 {
	if e.file == nil {
		return 0
	}
	return e.file.UncompressedSize64
}

func (e Entry) Bytes() ([]byte, error) {
	if e.file == nil {
		return nil, fmt.Errorf("read %s: entry is not backed by an archive", e.Path)
	}

	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidArchive, e.Path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidArchive, e.Path, err)
	}
	return data, nil
}

func (e Entry) Text() (string, error) {
	data, err := e.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
