package notify

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a status message stays visible.
const DefaultTTL = 3 * time.Second

const (
	FirstBaselineSaved = "First upload saved as baseline"
	BaselineSaved      = "Baseline saved successfully!"
	BaselineSaveFailed = "Failed to save baseline"
	BaselineCleared    = "Baseline cleared"
)

const statusKey = "status"

// Board holds at most one transient status message. A new post replaces the
// current one and restarts its expiry.
type Board struct {
	entries *cache.Cache
}

func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{
		entries: cache.New(ttl, time.Minute),
	}
}

func (b *Board) Post(msg string) {
	b.entries.Set(statusKey, msg, cache.DefaultExpiration)
}

// Current returns the message if it has not expired yet.
func (b *Board) Current() (string, bool) {
	v, ok := b.entries.Get(statusKey)
	if !ok {
		return "", false
	}
	msg, ok := v.(string)
	return msg, ok
}

func (b *Board) Clear() {
	b.entries.Delete(statusKey)
}
