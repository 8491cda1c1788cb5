// Package policy defines the contract every replacement policy in this
// module satisfies, so that callers (in particular the shard package) can
// depend on any of them interchangeably.
package policy

// CachePolicy is the minimal surface shared by every concrete policy: LRU,
// LRU-K, LFU, and ARC. Operations beyond this contract (Remove, Purge,
// capacity mutation) are policy-specific and exposed as concrete methods on
// each package's own type rather than widened into this interface.
type CachePolicy[K comparable, V any] interface {
	// Put inserts or overwrites the value for key. A capacity-0 policy
	// accepts Put as a no-op.
	Put(key K, value V)
	// Get returns the value for key and whether it was present. A hit
	// updates the policy's recency or frequency state as a side effect.
	Get(key K) (value V, ok bool)
	// Len reports the number of entries currently resident.
	Len() int
}
