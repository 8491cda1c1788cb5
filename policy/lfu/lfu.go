// Package lfu implements the Least-Frequently-Used eviction policy: a
// frequency-bucket index with an optional aging strategy that rescales
// every live frequency once the running average access count exceeds a
// threshold. It also serves, with aging disabled, as the frequency half of
// policy/arc.
package lfu

import (
	"sync"

	"github.com/kvcache/repcache/internal/dlist"
)

// Cache is a capacity-bounded LFU cache with a fixed-size ghost list of
// recently evicted keys and an optional aging strategy.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	index    map[K]*dlist.Node[K, V]
	buckets  map[int]*dlist.List[K, V]
	minFreq  int

	// maxAverage <= 0 disables aging entirely, matching how this module's
	// ARC implementation constructs its frequency half.
	maxAverage    int
	totalAccesses int

	ghostCap   int
	ghostList  *dlist.List[K, struct{}]
	ghostIndex map[K]*dlist.Node[K, struct{}]
}

// New returns an empty LFU cache. maxAverageAccesses <= 0 disables aging.
func New[K comparable, V any](capacity, maxAverageAccesses int) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache[K, V]{
		capacity:   capacity,
		index:      make(map[K]*dlist.Node[K, V]),
		buckets:    make(map[int]*dlist.List[K, V]),
		maxAverage: maxAverageAccesses,
		ghostCap:   capacity,
		ghostList:  dlist.New[K, struct{}](),
		ghostIndex: make(map[K]*dlist.Node[K, struct{}]),
	}
}

// Put inserts or overwrites the value for key.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		n.Value = value
		c.touchLocked(n)
		return
	}
	if c.capacity == 0 {
		return
	}
	if len(c.index) >= c.capacity {
		c.evictLocked()
	}

	n := &dlist.Node[K, V]{Key: key, Value: value, AccessCount: 1}
	c.bucketLocked(1).PushBack(n)
	c.index[key] = n
	c.minFreq = 1
	c.totalAccesses++
	c.maybeAgeLocked()
}

// Get returns the value for key, bumping its frequency by one.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touchLocked(n)
	return n.Value, true
}

// Contains reports whether key is resident, without affecting frequency.
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

// Purge drops every entry, bucket, and ghost entry, and resets the aging
// counters. After Purge, Get misses until the next Put.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[K]*dlist.Node[K, V])
	c.buckets = make(map[int]*dlist.List[K, V])
	c.ghostList = dlist.New[K, struct{}]()
	c.ghostIndex = make(map[K]*dlist.Node[K, struct{}])
	c.minFreq = 0
	c.totalAccesses = 0
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

func (c *Cache[K, V]) bucketLocked(freq int) *dlist.List[K, V] {
	l, ok := c.buckets[freq]
	if !ok {
		l = dlist.New[K, V]()
		c.buckets[freq] = l
	}
	return l
}

// touchLocked bumps n's frequency by exactly one. Because every ordinary
// hit steps the frequency by +1, advancing minFreq directly to the new
// frequency (when the old bucket was the minimum and is now empty) can
// never overshoot a non-empty intermediate bucket — unlike the aging
// rebuild, which can shift frequencies by an arbitrary amount and must
// instead do a full recompute (see recomputeMinFreqLocked).
func (c *Cache[K, V]) touchLocked(n *dlist.Node[K, V]) {
	oldFreq := n.AccessCount
	oldBucket := c.buckets[oldFreq]
	oldBucket.Remove(n)
	emptied := oldBucket.Empty()
	if emptied {
		delete(c.buckets, oldFreq)
	}

	n.AccessCount++
	c.bucketLocked(n.AccessCount).PushBack(n)

	if emptied && oldFreq == c.minFreq {
		c.minFreq = n.AccessCount
	}

	c.totalAccesses++
	c.maybeAgeLocked()
}

// evictLocked evicts the longest-resident entry at the minimum frequency
// into the ghost list. Caller must hold c.mu.
func (c *Cache[K, V]) evictLocked() {
	bucket, ok := c.buckets[c.minFreq]
	if !ok {
		return
	}
	victim := bucket.Front()
	if victim == nil {
		return
	}
	bucket.Remove(victim)
	if bucket.Empty() {
		delete(c.buckets, c.minFreq)
		c.recomputeMinFreqLocked()
	}
	delete(c.index, victim.Key)

	// Keep totalAccesses/len(index) a meaningful running average at every
	// observation point, not only across aging.
	c.totalAccesses -= victim.AccessCount
	if c.totalAccesses < 0 {
		c.totalAccesses = 0
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

// recomputeMinFreqLocked sets minFreq to the smallest non-empty bucket key,
// or leaves it at its current value if no buckets remain (an empty cache).
func (c *Cache[K, V]) recomputeMinFreqLocked() {
	if len(c.index) == 0 {
		return
	}
	min := -1
	for freq := range c.buckets {
		if min == -1 || freq < min {
			min = freq
		}
	}
	if min != -1 {
		c.minFreq = min
	}
}

// maybeAgeLocked lowers every live entry's frequency by maxAverage/2
// (floored at 1) once the running average total_accesses/main_size exceeds
// maxAverage, and lowers totalAccesses by the same amounts so it stays the
// sum of the live frequencies. Aging is disabled entirely when
// maxAverage <= 0 — the convention this module's ARC implementation relies
// on for its frequency half, which never ages.
func (c *Cache[K, V]) maybeAgeLocked() {
	if c.maxAverage <= 0 || len(c.index) == 0 {
		return
	}
	if c.totalAccesses/len(c.index) <= c.maxAverage {
		return
	}

	decrement := c.maxAverage / 2

	fresh := make(map[int]*dlist.List[K, V])
	for _, n := range c.index {
		newFreq := n.AccessCount - decrement
		if newFreq < 1 {
			newFreq = 1
		}
		c.totalAccesses -= n.AccessCount - newFreq
		n.AccessCount = newFreq
		l, ok := fresh[newFreq]
		if !ok {
			l = dlist.New[K, V]()
			fresh[newFreq] = l
		}
		// n is still linked into its old (about-to-be-discarded) bucket
		// list; PushBack unconditionally overwrites n's prev/next for the
		// new list, so the stale links are harmless and need no explicit
		// Remove first.
		l.PushBack(n)
	}
	c.buckets = fresh
	c.recomputeMinFreqLocked()
}
