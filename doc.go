// Package repcache is a generic in-process cache engine offering several
// replacement policies behind a uniform Put/Get contract: LRU, an
// admission-gated LRU-K, LFU with dynamic aging, and an Adaptive
// Replacement Cache (ARC) that blends recency and frequency. Any policy can
// be sharded across independent partitions via the shard subpackage to
// reduce lock contention.
//
// Each policy is safe for concurrent use: a single instance serializes its
// own operations under an internal mutex. A sharded cache is linearizable
// per-partition only — there is no cross-partition coordination.
//
// repcache itself is a thin façade: NewLRU, NewLRUK, NewLFU, NewARC, and
// NewSharded simply construct the corresponding policy/* type. Callers that
// need a policy-specific operation beyond Put/Get/Len (Remove, Purge,
// capacity mutation) can import the concrete subpackage directly.
package repcache
