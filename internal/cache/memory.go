package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the hot layer for fetched feed and page bodies.
// Values are copied on both Set and Get: feed parsing slices the body
// in place, and a later hit must still see the original bytes.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache. Entries written without an
// explicit TTL expire after defaultTTL.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a copy of the cached value.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	stored := val.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, true
}

// Set stores a copy of the value. A non-positive ttl falls back to the
// cache default; nothing in this layer lives forever.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	c.cache.Set(key, stored, ttl)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
