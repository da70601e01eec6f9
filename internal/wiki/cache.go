package wiki

// Cache memoises image lookups by normalised name prefix for a single run.
// Both hits and misses are remembered so each prefix is queried at most once.
// It is not safe for concurrent use.
type Cache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	url   string
	found bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached URL for prefix. ok is false when the prefix has not
// been looked up yet; found is false when it was looked up without result.
func (c *Cache) Get(prefix string) (url string, found, ok bool) {
	e, ok := c.entries[prefix]
	return e.url, e.found, ok
}

// Put records a resolved URL for prefix.
func (c *Cache) Put(prefix, url string) {
	c.entries[prefix] = cacheEntry{url: url, found: true}
}

// PutMiss records that prefix has no usable image.
func (c *Cache) PutMiss(prefix string) {
	c.entries[prefix] = cacheEntry{}
}

// Len returns the number of cached prefixes.
func (c *Cache) Len() int {
	return len(c.entries)
}
