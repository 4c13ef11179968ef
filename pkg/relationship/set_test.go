package relationship

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Parallel()

	s := NewSet("b", "a", "b")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
	assert.True(t, s.Equal(users("a", "b").Set()))
	assert.False(t, s.Equal(NewSet("a", "c")))
}
