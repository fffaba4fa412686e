package cache

import (
	"context"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
	"github.com/retailcore/pospricing/internal/config"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache.
// go-cache guards its map with its own lock, so concurrent POS devices can
// read and write safely. A lookup after expiry is a miss; entries are never
// refreshed implicitly.
type InMemoryCache struct {
	cache *goCache.Cache
	cfg   *config.Configuration
}

// NewInMemoryCache creates a new InMemoryCache instance
func NewInMemoryCache(cfg *config.Configuration) *InMemoryCache {
	return &InMemoryCache{
		cache: goCache.New(DefaultExpiration, DefaultCleanupInterval),
		cfg:   cfg,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if !c.cfg.Cache.Enabled {
		return nil, false
	}

	span := StartCacheSpan(ctx, "inmemory", "get", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	return c.cache.Get(key)
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.cfg.Cache.Enabled {
		return
	}

	span := StartCacheSpan(ctx, "inmemory", "set", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	c.cache.Set(key, value, expiration)
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	if !c.cfg.Cache.Enabled {
		return
	}

	span := StartCacheSpan(ctx, "inmemory", "delete", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) int {
	if !c.cfg.Cache.Enabled {
		return 0
	}

	span := StartCacheSpan(ctx, "inmemory", "delete_by_prefix", map[string]interface{}{"prefix": prefix})
	defer FinishSpan(span)

	deleted := 0
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
			deleted++
		}
	}
	return deleted
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush(ctx context.Context) {
	if !c.cfg.Cache.Enabled {
		return
	}
	c.cache.Flush()
}
