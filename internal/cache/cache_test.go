package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	c, err := New[string](8)
	require.NoError(t, err)

	c.Put("doc-1", "application/pdf", time.Minute)

	got, ok := c.Get("doc-1")
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", got)

	_, ok = c.Get("doc-2")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c, err := New[int](8)
	require.NoError(t, err)

	c.Put("doc-1", 42, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("doc-1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheEvictsOldest(t *testing.T) {
	c, err := New[int](2)
	require.NoError(t, err)

	c.Put("a", 1, time.Minute)
	c.Put("b", 2, time.Minute)
	c.Put("c", 3, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}
