package baseline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Backend kinds selectable in config.
const (
	KindFile    = "file"
	KindBitcask = "bitcask"
	KindSQLite  = "sqlite"
	KindMemory  = "memory"
)

var ErrNotFound = errors.New("key not found")

// Backend is the durable key-value storage the baseline lives in.
// Delete of an absent key must succeed.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Kinds lists the supported backend kinds.
func Kinds() []string {
	return []string{KindFile, KindBitcask, KindSQLite, KindMemory}
}

// ValidKind reports whether kind names a supported backend.
func ValidKind(kind string) bool {
	for _, k := range Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Open opens the backend of the given kind rooted at dir.
func Open(ctx context.Context, kind, dir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindFile, "":
		return NewFileBackend(dir), nil
	case KindBitcask:
		return OpenBitcask(filepath.Join(dir, "bitcask"))
	case KindSQLite:
		return OpenSQLite(ctx, filepath.Join(dir, "baselines.db"))
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q (expected one of %s)", kind, strings.Join(Kinds(), ", "))
	}
}
