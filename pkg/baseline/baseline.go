package baseline

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/olimci/followdiff/pkg/digest"
	"github.com/olimci/followdiff/pkg/relationship"
	log "github.com/sirupsen/logrus"
)

// Key is the single storage slot the baseline is kept under.
const Key = "instagram_baseline"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is a saved point-in-time view of followers and following.
type Snapshot struct {
	Followers  []string
	Following  []string
	CapturedAt time.Time
	Archive    digest.Digest
}

func (s Snapshot) FollowerSet() relationship.Set {
	return relationship.NewSet(s.Followers...)
}

func (s Snapshot) FollowingSet() relationship.Set {
	return relationship.NewSet(s.Following...)
}

// Reference returns the username view used for change detection.
func (s Snapshot) Reference() relationship.Reference {
	return relationship.Reference{
		Followers: s.Followers,
		Following: s.Following,
	}
}

// record is the persisted form of a Snapshot.
type record struct {
	Timestamp int64    `json:"timestamp"` // epoch millis
	Followers []string `json:"followers"`
	Following []string `json:"following"`
	Archive   string   `json:"archive,omitempty"`
}

// Store loads, saves and clears the one baseline snapshot.
type Store struct {
	backend Backend
	key     string
	now     func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for CapturedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     Key,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored snapshot. Missing or unreadable data is reported
// as no baseline.
func (s *Store) Load(ctx context.Context) (Snapshot, bool) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warn("failed to load baseline")
		}
		return Snapshot{}, false
	}

	snap, err := decode(data)
	if err != nil {
		log.WithError(err).Warn("ignoring corrupt baseline")
		return Snapshot{}, false
	}
	return snap, true
}

// Save replaces the stored baseline with the given lists. It reports false
// when the backend write fails.
func (s *Store) Save(ctx context.Context, followers, following relationship.List, archive digest.Digest) bool {
	rec := record{
		Timestamp: s.now().UnixMilli(),
		Followers: followers.Usernames(),
		Following: following.Usernames(),
		Archive:   archive.String(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		log.WithError(err).Error("failed to encode baseline")
		return false
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		log.WithError(err).Error("failed to save baseline")
		return false
	}

	log.Debugf("saved baseline (%d followers, %d following)", len(rec.Followers), len(rec.Following))
	return true
}

// Clear removes the stored baseline. Clearing an absent baseline succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear baseline: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func decode(data []byte) (Snapshot, error) {
	if json.Get(data).ValueType() != jsoniter.ObjectValue {
		return Snapshot{}, fmt.Errorf("decode baseline: record is not an object")
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Snapshot{}, fmt.Errorf("decode baseline: %w", err)
	}

	snap := Snapshot{
		Followers: rec.Followers,
		Following: rec.Following,
	}
	if rec.Timestamp != 0 {
		snap.CapturedAt = time.UnixMilli(rec.Timestamp)
	}

	if rec.Archive != "" {
		d, err := digest.Parse(rec.Archive)
		if err != nil {
			log.WithError(err).Debug("ignoring unreadable baseline archive digest")
		} else {
			snap.Archive = d
		}
	}

	return snap, nil
}
