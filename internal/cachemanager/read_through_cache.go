package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache loads missing values through load and keeps them for ttl.
// Load errors are returned as-is and never cached.
type ReadThroughCache[K comparable, V any] struct {
	cache CacheManager[K, V]
	load  func(ctx context.Context, key K) (V, error)
	ttl   time.Duration
}

func NewReadThroughCache[K comparable, V any](
	cache CacheManager[K, V],
	load func(ctx context.Context, key K) (V, error),
	ttl time.Duration,
) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{cache: cache, load: load, ttl: ttl}
}

// Get returns the cached value for key, loading it on a miss.
func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.load(ctx, key)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Invalidate drops key so the next Get loads it again.
func (r *ReadThroughCache[K, V]) Invalidate(ctx context.Context, key K) error {
	return r.cache.Delete(ctx, key)
}

// Flush drops every cached value.
func (r *ReadThroughCache[K, V]) Flush(ctx context.Context) error {
	return r.cache.Flush(ctx)
}
