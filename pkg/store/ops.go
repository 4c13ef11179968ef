package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olimci/followdiff/pkg/baseline"
	"github.com/olimci/followdiff/pkg/notify"
	"github.com/olimci/followdiff/pkg/store/config"
	"github.com/olimci/followdiff/pkg/tracker"
	"github.com/olimci/followdiff/pkg/utils/fileutils"
	log "github.com/sirupsen/logrus"
)

// OpenOptions adjust how a session is opened.
type OpenOptions struct {
	// Backend overrides config.Storage.Backend when set.
	Backend string
}

// Session is a tracker session bound to this store's configured backend.
type Session struct {
	*tracker.Session

	Config    config.Config
	Backend   string
	baselines *baseline.Store
}

// Open installs the store if needed and opens a session on its backend.
func (s Store) Open(ctx context.Context, opts OpenOptions) (*Session, error) {
	if err := s.EnsureInstalled(); err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	kind := cfg.Storage.Backend
	if override := strings.ToLower(strings.TrimSpace(opts.Backend)); override != "" {
		if !baseline.ValidKind(override) {
			return nil, fmt.Errorf("unsupported storage backend %q", opts.Backend)
		}
		kind = override
	}

	backend, err := baseline.Open(ctx, kind, s.DataPath())
	if err != nil {
		return nil, err
	}
	log.Debugf("opened %s baseline storage in %s", kind, s.DataPath())

	baselines := baseline.NewStore(backend)
	return &Session{
		Session: tracker.NewSession(
			baselines,
			notify.NewBoard(notify.DefaultTTL),
			tracker.WithAutoBaseline(cfg.Options.AutoBaseline),
		),
		Config:    cfg,
		Backend:   kind,
		baselines: baselines,
	}, nil
}

func (s *Session) Close() error {
	return s.baselines.Close()
}

// CompareFile reads the archive at path and runs it through the session.
// Name and size are checked before the file is read.
func (s *Session) CompareFile(ctx context.Context, path string) (tracker.Result, error) {
	absPath, err := fileutils.AbsPath(path)
	if err != nil {
		return tracker.Result{}, err
	}

	info, err := fileutils.StatRegular(absPath)
	if err != nil {
		return tracker.Result{}, err
	}
	if err := tracker.Validate(info.Name(), info.Size()); err != nil {
		return tracker.Result{}, err
	}

	data, err := readArchive(absPath)
	if err != nil {
		return tracker.Result{}, err
	}

	return s.Upload(ctx, absPath, data)
}

// readArchive reads at most MaxArchiveSize bytes. A file that grew past the
// limit after it was checked is reported as a FileTooLargeError.
func readArchive(path string) ([]byte, error) {
	data, err := fileutils.ReadLimited(path, tracker.MaxArchiveSize)
	if errors.Is(err, fileutils.ErrExceedsLimit) {
		size := int64(tracker.MaxArchiveSize + 1)
		if info, statErr := fileutils.StatRegular(path); statErr == nil && info.Size() > size {
			size = info.Size()
		}
		return nil, &tracker.FileTooLargeError{Size: size}
	}
	return data, err
}
