package lru

import "testing"

func TestPutGetCoherence(t *testing.T) {
	c := New[string, int](3)
	c.Put("a", 1)
	c.Put("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Fatalf("Get(a) = (%d, %v), want (2, true)", v, ok)
	}
}

func TestMissReturnsNone(t *testing.T) {
	c := New[string, int](3)
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("Get on unknown key must miss")
	}
}

func TestCapacityBound(t *testing.T) {
	c := New[string, int](3)
	for i := 0; i < 10; i++ {
		c.Put(string(rune('a'+i)), i)
	}
	if c.Len() > 3 {
		t.Fatalf("Len() = %d, want <= 3", c.Len())
	}
}

// Capacity 3, Put(1,a), Put(2,b), Put(3,c), Get(1), Put(4,d) evicts key 2.
func TestLeastRecencyEviction(t *testing.T) {
	c := New[string, string](3)
	c.Put("1", "a")
	c.Put("2", "b")
	c.Put("3", "c")
	c.Get("1")
	c.Put("4", "d")

	if _, ok := c.Get("2"); ok {
		t.Fatalf("key 2 should have been evicted")
	}
	for _, k := range []string{"1", "3", "4"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("key %s should still be resident", k)
		}
	}
}

func TestEvictedKeyEntersGhostList(t *testing.T) {
	c := New[string, int](1)
	c.Put("a", 1)
	c.Put("b", 2) // evicts a into the ghost list

	if !c.CheckGhost("a") {
		t.Fatalf("evicted key a should be in the ghost list")
	}
	// CheckGhost removes on hit.
	if c.CheckGhost("a") {
		t.Fatalf("CheckGhost must remove the ghost entry on hit")
	}
}

func TestRemoveDoesNotGhost(t *testing.T) {
	c := New[string, int](1)
	c.Put("a", 1)
	if !c.Remove("a") {
		t.Fatalf("Remove(a) should report true")
	}
	if c.CheckGhost("a") {
		t.Fatalf("explicit Remove must not populate the ghost list")
	}
	if c.Remove("a") {
		t.Fatalf("second Remove(a) should report false")
	}
}

func TestEvictHookFiresOnCapacityEvictionOnly(t *testing.T) {
	var evicted []string
	c := New[string, int](1, WithEvictHook[string, int](func(k string) {
		evicted = append(evicted, k)
	}))
	c.Put("a", 1)
	c.Put("b", 2) // evicts a

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("evicted = %v, want [a]", evicted)
	}

	c.Remove("b")
	if len(evicted) != 1 {
		t.Fatalf("explicit Remove must not fire the eviction hook, evicted = %v", evicted)
	}
}

func TestDisjointMainAndGhost(t *testing.T) {
	c := New[string, int](1)
	c.Put("a", 1)
	c.Put("b", 2) // evicts a

	_, mainHit := c.Get("a")
	ghostHit := c.CheckGhost("a")
	if mainHit && ghostHit {
		t.Fatalf("a key must never be both resident and ghosted")
	}
	if !ghostHit {
		t.Fatalf("a should be ghosted after eviction")
	}
}

func TestZeroCapacityIsNoOp(t *testing.T) {
	c := New[string, int](0)
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("zero-capacity cache must never retain entries")
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
}

func TestDecreaseCapacityEvicts(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	if !c.DecreaseCapacity() {
		t.Fatalf("DecreaseCapacity should succeed from capacity 2")
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after shrinking capacity", c.Len())
	}
}

func TestDecreaseCapacityToZeroIsFalseAtZero(t *testing.T) {
	c := New[string, int](0)
	if c.DecreaseCapacity() {
		t.Fatalf("DecreaseCapacity at capacity 0 must return false")
	}
}
