// Package lru implements the Least-Recently-Used eviction policy: a single
// recency-ordered list with a ghost list of recently evicted keys. It also
// serves, unmodified, as the recency half of policy/arc.
package lru

import (
	"sync"

	"github.com/kvcache/repcache/internal/dlist"
)

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*Cache[K, V])

// WithEvictHook registers a callback fired with the evicted key whenever
// capacity pressure evicts an entry. It is not fired by an explicit Remove.
// policy/lruk uses this to keep its pending-value map from growing without
// bound as its history cache evicts keys.
func WithEvictHook[K comparable, V any](fn func(key K)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// Cache is a capacity-bounded LRU cache with a fixed-size ghost list of
// recently evicted keys.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	main     *dlist.List[K, V]
	index    map[K]*dlist.Node[K, V]

	ghostCap   int
	ghostList  *dlist.List[K, struct{}]
	ghostIndex map[K]*dlist.Node[K, struct{}]

	onEvict func(key K)
}

// New returns an empty LRU cache of the given capacity. Ghost-list capacity
// is fixed to capacity at construction and never changes, even if the main
// capacity is later mutated via IncreaseCapacity/DecreaseCapacity.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	c := &Cache[K, V]{
		capacity:   capacity,
		main:       dlist.New[K, V](),
		index:      make(map[K]*dlist.Node[K, V]),
		ghostCap:   capacity,
		ghostList:  dlist.New[K, struct{}](),
		ghostIndex: make(map[K]*dlist.Node[K, struct{}]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put inserts or overwrites the value for key.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		n.Value = value
		c.main.MoveToFront(n)
		return
	}
	if c.capacity == 0 {
		return
	}
	if len(c.index) >= c.capacity {
		c.evictLocked()
	}
	n := &dlist.Node[K, V]{Key: key, Value: value}
	c.main.PushFront(n)
	c.index[key] = n
}

// Get returns the value for key, promoting it to most-recently-used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, _, ok := c.GetWithCount(key)
	return v, ok
}

// GetWithCount behaves like Get but also returns the post-increment access
// count, letting policy/arc decide on promotion without a second lookup.
func (c *Cache[K, V]) GetWithCount(key K) (V, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, 0, false
	}
	c.main.MoveToFront(n)
	n.AccessCount++
	return n.Value, n.AccessCount, true
}

// Contains reports whether key is resident, without affecting recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[key]
	return ok
}

// CheckGhost reports whether key is present in the ghost list and, if so,
// removes it. Used by policy/arc's capacity-transfer step.
func (c *Cache[K, V]) CheckGhost(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.ghostIndex[key]
	if !ok {
		return false
	}
	c.ghostList.Remove(n)
	delete(c.ghostIndex, key)
	return true
}

// Remove unconditionally deletes key. Unlike capacity-driven eviction, an
// explicit Remove does not populate the ghost list and does not fire the
// eviction hook.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		return false
	}
	c.main.Remove(n)
	delete(c.index, key)
	return true
}

// Len returns the current number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Cap returns the current main capacity.
func (c *Cache[K, V]) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// IncreaseCapacity grows the main capacity by one.
func (c *Cache[K, V]) IncreaseCapacity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capacity++
}

// DecreaseCapacity shrinks the main capacity by one, evicting an entry
// first if necessary. It is a no-op returning false if capacity is already
// zero.
func (c *Cache[K, V]) DecreaseCapacity() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity == 0 {
		return false
	}
	c.capacity--
	if len(c.index) > c.capacity {
		c.evictLocked()
	}
	return true
}

// evictLocked evicts the least-recently-used entry into the ghost list.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictLocked() {
	victim := c.main.Back()
	if victim == nil {
		return
	}
	c.main.Remove(victim)
	delete(c.index, victim.Key)

	if c.onEvict != nil {
		c.onEvict(victim.Key)
	}

	c.addGhostLocked(victim.Key)
}

func (c *Cache[K, V]) addGhostLocked(key K) {
	if c.ghostCap == 0 {
		return
	}
	if c.ghostList.Len() >= c.ghostCap {
		oldest := c.ghostList.Back()
		if oldest != nil {
			c.ghostList.Remove(oldest)
			delete(c.ghostIndex, oldest.Key)
		}
	}
	gn := &dlist.Node[K, struct{}]{Key: key}
	c.ghostList.PushFront(gn)
	c.ghostIndex[key] = gn
}
