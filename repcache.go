package repcache

import (
	"github.com/kvcache/repcache/policy"
	"github.com/kvcache/repcache/policy/arc"
	"github.com/kvcache/repcache/policy/lfu"
	"github.com/kvcache/repcache/policy/lru"
	"github.com/kvcache/repcache/policy/lruk"
	"github.com/kvcache/repcache/shard"
)

// CachePolicy is the contract every policy constructed here satisfies:
// Put, Get, and Len. It is an alias for policy.CachePolicy so callers never
// need to import the policy package directly just to name the type.
type CachePolicy[K comparable, V any] = policy.CachePolicy[K, V]

// NewLRU constructs a Least-Recently-Used cache of the given capacity.
func NewLRU[K comparable, V any](capacity int, opts ...lru.Option[K, V]) *lru.Cache[K, V] {
	return lru.New[K, V](capacity, opts...)
}

// NewLRUK constructs an LRU-K cache: capacity bounds the admitted set,
// historyCapacity bounds how many not-yet-admitted keys are tracked, and k
// is the number of observations required before admission.
func NewLRUK[K comparable, V any](capacity, historyCapacity, k int) *lruk.Cache[K, V] {
	return lruk.New[K, V](capacity, historyCapacity, k)
}

// NewLFU constructs a Least-Frequently-Used cache. maxAverageAccesses <= 0
// disables the dynamic aging strategy entirely.
func NewLFU[K comparable, V any](capacity, maxAverageAccesses int) *lfu.Cache[K, V] {
	return lfu.New[K, V](capacity, maxAverageAccesses)
}

// NewARC constructs an Adaptive Replacement Cache blending a recency half
// and a frequency half. transformThreshold is the number of recency-half
// hits required before an entry is also promoted into the frequency half.
func NewARC[K comparable, V any](capacity, transformThreshold int) *arc.Cache[K, V] {
	return arc.New[K, V](capacity, transformThreshold)
}

// NewSharded fans any policy out across sliceCount independent partitions
// (sliceCount <= 0 uses the host's logical CPU count). newPolicy builds
// one partition's policy instance at its per-partition capacity — typically
// one of NewLRU/NewLRUK/NewLFU/NewARC wrapped in a closure, since those
// return concrete types rather than the CachePolicy interface.
func NewSharded[K comparable, V any](totalCapacity, sliceCount int, newPolicy shard.Factory[K, V]) *shard.Sharded[K, V] {
	return shard.New[K, V](totalCapacity, sliceCount, newPolicy)
}
