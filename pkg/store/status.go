package store

import (
	"context"
	"time"
)

type StatusSnapshot struct {
	Root     string
	Backend  string
	Baseline *BaselineStatus
}

type BaselineStatus struct {
	CapturedAt     time.Time
	FollowerCount  int
	FollowingCount int
	Archive        string
}

// Status summarises the store and its stored baseline.
func (s Store) Status(ctx context.Context, opts OpenOptions) (StatusSnapshot, error) {
	if !s.IsInstalled() {
		return StatusSnapshot{}, ErrNotInstalled
	}

	sess, err := s.Open(ctx, opts)
	if err != nil {
		return StatusSnapshot{}, err
	}
	defer sess.Close()

	status := StatusSnapshot{
		Root:    s.Root,
		Backend: sess.Backend,
	}

	snap, ok := sess.Baseline(ctx)
	if !ok {
		return status, nil
	}

	status.Baseline = &BaselineStatus{
		CapturedAt:     snap.CapturedAt,
		FollowerCount:  snap.FollowerSet().Len(),
		FollowingCount: snap.FollowingSet().Len(),
		Archive:        snap.Archive.String(),
	}
	return status, nil
}
