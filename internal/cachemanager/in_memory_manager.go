package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/scrawl/internal/log"
)

const (
	DefaultExpiration      = 2 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// Stats counts lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// InMemoryCacheManager implements CacheManager on go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
	hits    atomic.Int64
	misses  atomic.Int64
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// NewInMemoryCacheManager creates a cache. useCase labels log lines.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the cached value for key.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		c.misses.Add(1)
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "use_case", c.useCase)
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return v, true
}

// GetWithRefresh is Get that also pushes the expiry of a hit out to ttl.
func (c *InMemoryCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	value, found := c.Get(ctx, key)
	if found {
		c.Set(ctx, key, value, ttl)
	}
	return value, found
}

// Set stores value under key for ttl. gocache.DefaultExpiration uses the
// cache default; gocache.NoExpiration keeps it forever.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys.
func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes everything.
func (c *InMemoryCacheManager[K, V]) Flush(context.Context) {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "use_case", c.useCase)
}

// Len is the number of entries, including expired ones not yet cleaned up.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}

// Stats returns hit and miss counts since creation.
func (c *InMemoryCacheManager[K, V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
