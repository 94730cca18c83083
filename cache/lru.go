package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/arvok-systems/framevault/resource"
)

type lruEntry struct {
	key   CacheKey
	value []byte
}

// LRUBlockCache is a size-bounded, least-recently-used BlockCache. Besides
// its own byte-size limit, it also reserves memory from a shared
// resource.Controller so that decode-side caching competes fairly for
// memory with whatever else the controller is tracking; an entry that
// can't be admitted under the controller's global limit is simply not
// cached (the caller falls back to re-decoding).
type LRUBlockCache struct {
	mu sync.Mutex

	limit int64
	size  int64

	controller *resource.Controller

	ll    *list.List
	items map[CacheKey]*list.Element
}

var _ BlockCache = (*LRUBlockCache)(nil)

// NewLRUBlockCache creates an LRUBlockCache bounded at limit bytes,
// additionally gated by rc's global memory limit (rc may be nil).
func NewLRUBlockCache(limit int64, rc *resource.Controller) *LRUBlockCache {
	return &LRUBlockCache{
		limit:      limit,
		controller: rc,
		ll:         list.New(),
		items:      make(map[CacheKey]*list.Element),
	}
}

// Size returns the current total size in bytes of cached entries.
func (c *LRUBlockCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *LRUBlockCache) Get(ctx context.Context, key CacheKey) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (c *LRUBlockCache) Set(ctx context.Context, key CacheKey, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		old := el.Value.(*lruEntry)
		c.size -= int64(len(old.value))
		c.controller.ReleaseMemory(int64(len(old.value)))
		c.ll.Remove(el)
		delete(c.items, key)
	}

	need := int64(len(b))
	if !c.controller.TryAcquireMemory(need) {
		return
	}

	for c.size+need > c.limit && c.ll.Len() > 0 {
		c.evictOldest()
	}

	el := c.ll.PushFront(&lruEntry{key: key, value: b})
	c.items[key] = el
	c.size += need
}

func (c *LRUBlockCache) evictOldest() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*lruEntry)
	c.ll.Remove(el)
	delete(c.items, entry.key)
	c.size -= int64(len(entry.value))
	c.controller.ReleaseMemory(int64(len(entry.value)))
}
