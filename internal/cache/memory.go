package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process cache backed by go-cache
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache. Entries expire after defaultTTL and
// are purged every cleanupInterval.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns a copy-free view of the cached bytes
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	b, ok := val.([]byte)
	return b, ok
}

// Set stores value; a zero ttl uses the cache default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}
