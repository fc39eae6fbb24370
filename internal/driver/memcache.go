package driver

import "sync"

// MemoryCache deduplicates work within one process: sets with identical
// content and options are rendered once. Keyed by Digest.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[Digest]CacheEntry
}

// NewMemoryCache creates a MemoryCache with the given capacity hint.
func NewMemoryCache(capHint int) *MemoryCache {
	return &MemoryCache{entries: make(map[Digest]CacheEntry, capHint)}
}

// Get returns the entry stored under key.
func (c *MemoryCache) Get(key Digest) (CacheEntry, bool) {
	if c == nil {
		return CacheEntry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put stores an entry.
func (c *MemoryCache) Put(key Digest, e CacheEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Len returns the number of entries.
func (c *MemoryCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
