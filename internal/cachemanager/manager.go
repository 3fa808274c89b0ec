// Package cachemanager wraps patrickmn/go-cache behind a small generic
// interface and offers a read-through helper on top of it.
package cachemanager

import (
	"context"
	"time"
)

//go:generate mockery --name CacheManager --output ../mocks --outpkg mocks --with-expecter

// CacheManager is a typed key/value cache with per-entry TTL.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
