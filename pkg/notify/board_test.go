package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBoardPostReplacesMessage(t *testing.T) {
	t.Parallel()

	b := NewBoard(time.Minute)

	_, ok := b.Current()
	assert.False(t, ok)

	b.Post(BaselineSaved)
	b.Post(BaselineCleared)

	msg, ok := b.Current()
	assert.True(t, ok)
	assert.Equal(t, BaselineCleared, msg)

	b.Clear()
	_, ok = b.Current()
	assert.False(t, ok)
}

func TestBoardMessagesExpire(t *testing.T) {
	t.Parallel()

	b := NewBoard(20 * time.Millisecond)
	b.Post(FirstBaselineSaved)

	assert.Eventually(t, func() bool {
		_, ok := b.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNewBoardDefaultsTTL(t *testing.T) {
	t.Parallel()

	b := NewBoard(0)
	b.Post(BaselineSaveFailed)

	msg, ok := b.Current()
	assert.True(t, ok)
	assert.Equal(t, BaselineSaveFailed, msg)
}
