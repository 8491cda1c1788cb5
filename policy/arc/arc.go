// Package arc implements the Adaptive Replacement Cache: a composition of
// an LRU half (recency) and an LFU half (frequency, aging disabled) with a
// ghost-driven capacity transfer between the two.
package arc

import (
	"sync"

	"github.com/kvcache/repcache/policy/lfu"
	"github.com/kvcache/repcache/policy/lru"
)

// Cache adaptively splits a fixed total capacity between a recency half and
// a frequency half, shifting capacity toward whichever half's ghost list is
// currently absorbing hits.
//
// Concurrency: a single top-level mutex serializes every Put/Get. The two
// halves retain their own internal mutexes (each is independently usable as
// a standalone lru.Cache/lfu.Cache) but are never contended concurrently,
// since the top-level lock already excludes concurrent entry — this is
// simpler than maintaining a strict lock order across two sub-caches and is
// sufficient because ARC never needs to hold both halves' locks at once.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	recency   *lru.Cache[K, V]
	frequency *lfu.Cache[K, V]

	transformThreshold int
}

// New returns an ARC cache with both halves starting at capacity and the
// given promotion threshold (clamped to at least 1).
func New[K comparable, V any](capacity, transformThreshold int) *Cache[K, V] {
	if transformThreshold < 1 {
		transformThreshold = 1
	}
	return &Cache[K, V]{
		recency:            lru.New[K, V](capacity),
		frequency:          lfu.New[K, V](capacity, 0), // aging disabled
		transformThreshold: transformThreshold,
	}
}

// Put inserts or overwrites the value for key.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkGhostsLocked(key)

	c.recency.Put(key, value)
	if c.frequency.Contains(key) {
		c.frequency.Put(key, value)
	}
}

// Get returns the value for key, promoting it into the frequency half once
// its recency-half access count reaches transformThreshold.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkGhostsLocked(key)

	if v, count, ok := c.recency.GetWithCount(key); ok {
		if count >= c.transformThreshold {
			c.frequency.Put(key, v)
		}
		return v, true
	}
	return c.frequency.Get(key)
}

// Len returns the combined size of both halves.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len() + c.frequency.Len()
}

// Remove deletes key from the recency half only; a key already promoted
// into the frequency half is not reachable through this method.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Remove(key)
}

// checkGhostsLocked runs the ghost-driven capacity transfer: a ghost hit on
// one half shifts one unit of capacity from the other half to the
// half whose ghost absorbed the hit. At most one direction fires per call.
func (c *Cache[K, V]) checkGhostsLocked(key K) {
	if c.recency.CheckGhost(key) {
		if c.frequency.DecreaseCapacity() {
			c.recency.IncreaseCapacity()
		}
		return
	}
	if c.frequency.CheckGhost(key) {
		if c.recency.DecreaseCapacity() {
			c.frequency.IncreaseCapacity()
		}
	}
}
