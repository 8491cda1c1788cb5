// Package lruk implements the LRU-K admission policy: a key is only
// admitted into the live cache once it has been observed K times, tracked
// by a separate history cache.
package lruk

import (
	"sync"

	"github.com/kvcache/repcache/policy/lru"
)

// Cache gates admission into an inner LRU cache behind a K-observation
// history. A key's value is remembered (but not yet admitted) from its
// first sighting; once the key's history count reaches k, the remembered
// value is admitted.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	k int

	admitted *lru.Cache[K, V]
	history  *lru.Cache[K, int]
	pending  map[K]V
}

// New returns an LRU-K cache. capacity bounds the admitted cache;
// historyCapacity bounds how many not-yet-admitted keys are tracked at
// once; k is clamped to at least 1.
func New[K comparable, V any](capacity, historyCapacity, k int) *Cache[K, V] {
	if k < 1 {
		k = 1
	}
	c := &Cache[K, V]{
		k:        k,
		admitted: lru.New[K, V](capacity),
		pending:  make(map[K]V),
	}
	// The history cache's eviction hook clears the corresponding
	// pending-value entry, keeping c.pending from growing without bound as
	// unpromoted keys fall out of history.
	c.history = lru.New[K, int](historyCapacity, lru.WithEvictHook[K, int](func(key K) {
		delete(c.pending, key)
	}))
	return c
}

// Put records an observation of key with value. The key is admitted into
// the live cache once it has been observed k times (counting this call).
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.admitted.Contains(key) {
		c.admitted.Put(key, value)
		return
	}

	count := c.bumpHistoryLocked(key)
	c.pending[key] = value

	if count >= c.k {
		delete(c.pending, key)
		c.history.Remove(key)
		c.admitted.Put(key, value)
	}
}

// Get returns the value for key if admitted. A miss in the admitted cache
// still counts as an observation and may itself trigger admission if the
// key already has a pending value recorded from an earlier Put.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.admitted.Get(key); ok {
		c.bumpHistoryLocked(key)
		return v, true
	}

	count := c.bumpHistoryLocked(key)
	if count >= c.k {
		if v, ok := c.pending[key]; ok {
			delete(c.pending, key)
			c.history.Remove(key)
			c.admitted.Put(key, v)
			return v, true
		}
	}

	var zero V
	return zero, false
}

// Len returns the number of entries in the admitted cache. History and
// pending-value bookkeeping are not live cached entries.
func (c *Cache[K, V]) Len() int {
	return c.admitted.Len()
}

// Remove deletes key from the admitted cache only; it does not clear any
// in-progress history for the key.
func (c *Cache[K, V]) Remove(key K) bool {
	return c.admitted.Remove(key)
}

func (c *Cache[K, V]) bumpHistoryLocked(key K) int {
	if count, ok := c.history.Get(key); ok {
		count++
		c.history.Put(key, count)
		return count
	}
	c.history.Put(key, 1)
	return 1
}
