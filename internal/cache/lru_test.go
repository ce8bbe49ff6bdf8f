package cache

import (
	"testing"
	"time"
)

func TestGetMissReturnsZero(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	if v, ok := c.Get("missing"); ok || v != 0 {
		t.Fatalf("expected miss, got %d, %v", v, ok)
	}
}

func TestSetGetAndOverwrite(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("k", "first")
	c.Set("k", "second")

	v, ok := c.Get("k")
	if !ok || v != "second" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if c.Size() != 1 {
		t.Fatalf("overwrite grew cache: %d", c.Size())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a is now most recent
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should survive eviction")
	}
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	c := NewLRUCache[int](2, time.Millisecond)
	c.Set("k", 1)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry not removed: %d", c.Size())
	}
}

func TestPurge(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	if c.Size() != 0 {
		t.Fatalf("purge left %d entries", c.Size())
	}
	c.Set("a", 3)
	if v, ok := c.Get("a"); !ok || v != 3 {
		t.Fatalf("cache unusable after purge: %d, %v", v, ok)
	}
}

func TestDelete(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("k", 1)
	c.Delete("k")
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted key still present")
	}
}
