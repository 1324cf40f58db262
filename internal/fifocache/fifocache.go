// Package fifocache is a bounded map with strict insertion-order eviction.
// Once the cache is full, inserting a new key evicts the single
// oldest-inserted entry. Re-reading or re-writing an existing key does not
// refresh its position; this is FIFO, not LRU, and the artwork caches
// depend on that.
package fifocache

// Cache maps K to V with at most limit entries.
// Not safe for concurrent use.
type Cache[K comparable, V any] struct {
	limit int
	order []K
	items map[K]V
}

// New returns an empty cache holding at most limit entries.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		limit: limit,
		items: make(map[K]V),
	}
}

// Get returns the cached value for key, if present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

// Put inserts or replaces the value for key. If the key is new and the
// cache is full, the oldest-inserted entry is evicted first.
func (c *Cache[K, V]) Put(key K, value V) {
	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}

	if len(c.items) >= c.limit && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}

	c.items[key] = value
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}
