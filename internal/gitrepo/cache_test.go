package gitrepo

import (
	"bytes"
	"crypto/sha1"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
)

func cacheKey(label string) plumbing.Hash {
	return plumbing.Hash(sha1.Sum([]byte(label)))
}

func TestObjectCache_GetPut(t *testing.T) {
	c := newObjectCache(64)

	data := []byte("tree bytes")
	c.put(cacheKey("a"), data)

	got, ok := c.get(cacheKey("a"))
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q, want %q", got, data)
	}
	if _, ok := c.get(cacheKey("missing")); ok {
		t.Fatal("expected cache miss")
	}
}

func TestObjectCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newObjectCache(20)

	c.put(cacheKey("a"), make([]byte, 8))
	c.put(cacheKey("b"), make([]byte, 8))
	// Touch a so b becomes the eviction candidate.
	c.get(cacheKey("a"))
	c.put(cacheKey("c"), make([]byte, 8))

	if _, ok := c.get(cacheKey("b")); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.get(cacheKey("a")); !ok {
		t.Fatal("expected a to survive")
	}
	if _, ok := c.get(cacheKey("c")); !ok {
		t.Fatal("expected c to be cached")
	}
}

func TestObjectCache_OversizedPayloadNotCached(t *testing.T) {
	c := newObjectCache(16)

	c.put(cacheKey("big"), make([]byte, 64))
	if _, ok := c.get(cacheKey("big")); ok {
		t.Fatal("payload larger than the bound must not be cached")
	}
	if c.size != 0 {
		t.Fatalf("size = %d, want 0", c.size)
	}
}

func TestObjectCache_ResizeReturnsPreviousAndEvicts(t *testing.T) {
	c := newObjectCache(64)
	c.put(cacheKey("a"), make([]byte, 16))
	c.put(cacheKey("b"), make([]byte, 16))

	if prev := c.resize(16); prev != 64 {
		t.Fatalf("resize returned %d, want 64", prev)
	}
	if c.size > 16 {
		t.Fatalf("size = %d after shrink, want <= 16", c.size)
	}
	if prev := c.resize(64); prev != 16 {
		t.Fatalf("resize returned %d, want 16", prev)
	}
}
