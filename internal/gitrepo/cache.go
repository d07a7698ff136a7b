package gitrepo

import (
	"container/list"

	"github.com/go-git/go-git/v5/plumbing"
)

// objectCache is a byte-bounded LRU over raw object data. The bound is the
// sum of cached payload sizes, not an entry count, so one oversized tree
// cannot starve the cache permanently: payloads larger than the bound are
// simply not cached.
type objectCache struct {
	max     int
	size    int
	order   *list.List // front = most recently used
	entries map[plumbing.Hash]*list.Element
}

type cacheEntry struct {
	key  plumbing.Hash
	data []byte
}

func newObjectCache(max int) *objectCache {
	return &objectCache{
		max:     max,
		order:   list.New(),
		entries: make(map[plumbing.Hash]*list.Element),
	}
}

func (c *objectCache) get(key plumbing.Hash) ([]byte, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).data, true
}

func (c *objectCache) put(key plumbing.Hash, data []byte) {
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		c.size += len(data) - len(el.Value.(*cacheEntry).data)
		el.Value.(*cacheEntry).data = data
		c.evict()
		return
	}
	if len(data) > c.max {
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, data: data})
	c.size += len(data)
	c.evict()
}

// resize sets a new byte bound, evicting down to it, and returns the
// previous bound.
func (c *objectCache) resize(max int) int {
	prev := c.max
	c.max = max
	c.evict()
	return prev
}

func (c *objectCache) evict() {
	for c.size > c.max {
		el := c.order.Back()
		if el == nil {
			return
		}
		entry := el.Value.(*cacheEntry)
		c.order.Remove(el)
		delete(c.entries, entry.key)
		c.size -= len(entry.data)
	}
}
