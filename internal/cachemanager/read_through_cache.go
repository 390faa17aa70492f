package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache computes missing values with fn and caches them.
// With bypass set every call goes to fn.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache  CacheManager[K, V]
	fn     func(ctx context.Context, input I) (V, error)
	bypass bool
}

// NewReadThroughCache wraps cache with the loader fn.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	bypass bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:  cache,
		fn:     fn,
		bypass: bypass,
	}
}

// Get returns the value cached under key, computing it from input on a
// miss. Errors are returned and not cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.bypass {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.GetWithRefresh(ctx, key, ttl); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}

// Invalidate drops every cached value, for example after a resize.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context) {
	r.cache.Flush(ctx)
}
