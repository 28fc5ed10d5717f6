package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded, TTL-aware key/value cache. Callers use it to avoid
// refetching and reclassifying documents that were just viewed; the
// classifier itself never caches.
type Cache[V any] struct {
	entries *lru.Cache[string, entry[V]]
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func New[V any](size int) (*Cache[V], error) {
	entries, err := lru.New[string, entry[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{entries: entries}, nil
}

// Get returns the cached value for key, or false when the key is absent
// or its TTL has elapsed. Expired entries are evicted on access.
func (c *Cache[V]) Get(key string) (V, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.entries.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Put(key string, value V, ttl time.Duration) {
	c.entries.Add(key, entry[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}

func (c *Cache[V]) Remove(key string) {
	c.entries.Remove(key)
}

func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
