// Package cachemanager provides small expiring caches used to avoid
// recomputing rendered output on every frame.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a keyed cache with per-entry expiry.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
	Len() int
}
