package tenant

import (
	"context"
	"time"

	"github.com/dmitrymomot/backoffice/pkg/cache"
)

// Cache stores resolved companies between requests.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// DefaultCacheSize is the default maximum number of cached companies.
const DefaultCacheSize = 1000

type inMemoryCache struct {
	lru *cache.LRU[string, *Tenant]
}

// NewInMemoryCache creates an LRU cache holding at most size companies.
// Expired entries are dropped lazily on access.
func NewInMemoryCache(size int) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &inMemoryCache{lru: cache.New[string, *Tenant](size)}
}

func (c *inMemoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	return c.lru.Get(key)
}

func (c *inMemoryCache) Set(_ context.Context, key string, t *Tenant, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.lru.Set(key, t, ttl)
}

func (c *inMemoryCache) Delete(_ context.Context, key string) {
	c.lru.Delete(key)
}

type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*Tenant, bool)         { return nil, false }
func (noopCache) Set(context.Context, string, *Tenant, time.Duration) {}
func (noopCache) Delete(context.Context, string)                      {}
