package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 10 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Minute

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache *goCache.Cache
	mu    sync.Mutex
}

// EvictFunc is called with the key and value of every entry that expires
// or is deleted.
type EvictFunc func(key string, value interface{})

// NewInMemoryCache creates a new InMemoryCache instance
func NewInMemoryCache(expiration, cleanupInterval time.Duration, onEvicted EvictFunc) *InMemoryCache {
	c := goCache.New(expiration, cleanupInterval)
	if onEvicted != nil {
		c.OnEvicted(onEvicted)
	}
	return &InMemoryCache{cache: c}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, normalize(expiration))
}

func (c *InMemoryCache) GetOrSet(_ context.Context, key string, create func() interface{}, expiration time.Duration) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, found := c.cache.Get(key); found {
		c.cache.Set(key, value, normalize(expiration))
		return value
	}

	value := create()
	c.cache.Set(key, value, normalize(expiration))
	return value
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Count(_ context.Context) int {
	return c.cache.ItemCount()
}

// DeleteExpired evicts expired entries immediately instead of waiting
// for the janitor.
func (c *InMemoryCache) DeleteExpired() {
	c.cache.DeleteExpired()
}

func normalize(expiration time.Duration) time.Duration {
	if expiration == 0 {
		return goCache.DefaultExpiration
	}
	return expiration
}
