package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string, int](2, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a") // a is now most recent
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should be evicted")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Size())
}

func TestLRUOverwriteAndDelete(t *testing.T) {
	c := NewLRUCache[int, string](0, 0) // clamps to 1
	c.Set(1, "x")
	c.Set(1, "y")
	v, _ := c.Get(1)
	assert.Equal(t, "y", v)

	c.Delete(1)
	assert.Zero(t, c.Size())

	c.Set(2, "z")
	c.Purge()
	_, ok := c.Get(2)
	assert.False(t, ok)
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRUCache[string, int](4, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", 7)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())
}
