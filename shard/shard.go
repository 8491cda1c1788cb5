// Package shard fans out any policy.CachePolicy across N independent
// partitions to reduce lock contention, at the cost of only per-partition
// linearizability.
package shard

import (
	"runtime"

	"github.com/kvcache/repcache/internal/util"
	"github.com/kvcache/repcache/policy"
)

// Factory builds one partition's policy instance at the given per-partition
// capacity.
type Factory[K comparable, V any] func(capacity int) policy.CachePolicy[K, V]

// Sharded dispatches each key to one of N independently-locked partitions
// by hash(key) mod N. There is no cross-partition coordination: eviction,
// capacity, and locking are all strictly local to a partition.
type Sharded[K comparable, V any] struct {
	parts []policy.CachePolicy[K, V]
}

// New builds a Sharded cache of sliceCount partitions (sliceCount <= 0 uses
// the host's logical CPU count, runtime.NumCPU), each built by newPolicy at
// capacity ceil(totalCapacity/sliceCount).
func New[K comparable, V any](totalCapacity, sliceCount int, newPolicy Factory[K, V]) *Sharded[K, V] {
	if sliceCount <= 0 {
		sliceCount = runtime.NumCPU()
	}
	perShard := (totalCapacity + sliceCount - 1) / sliceCount
	if perShard < 0 {
		perShard = 0
	}

	parts := make([]policy.CachePolicy[K, V], sliceCount)
	for i := range parts {
		parts[i] = newPolicy(perShard)
	}
	return &Sharded[K, V]{parts: parts}
}

func (s *Sharded[K, V]) partition(key K) policy.CachePolicy[K, V] {
	h := util.Fnv64a(key)
	return s.parts[util.ShardIndex(h, len(s.parts))]
}

// Put inserts or overwrites the value for key in its partition.
func (s *Sharded[K, V]) Put(key K, value V) {
	s.partition(key).Put(key, value)
}

// Get returns the value for key from its partition.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.partition(key).Get(key)
}

// Len returns the sum of every partition's live-entry count.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, p := range s.parts {
		total += p.Len()
	}
	return total
}

// Remove deletes key from its partition, if the underlying policy supports
// removal (LRU, LRU-K, ARC's recency half). It returns false for a policy
// that does not support Remove (LFU) or on a miss.
func (s *Sharded[K, V]) Remove(key K) bool {
	p := s.partition(key)
	if r, ok := p.(interface{ Remove(K) bool }); ok {
		return r.Remove(key)
	}
	return false
}

// Purge clears every partition, if the underlying policy supports purging
// (LFU). It is a no-op for policies that do not.
func (s *Sharded[K, V]) Purge() {
	for _, p := range s.parts {
		if pu, ok := p.(interface{ Purge() }); ok {
			pu.Purge()
		}
	}
}

// ShardCount returns the number of partitions.
func (s *Sharded[K, V]) ShardCount() int {
	return len(s.parts)
}
