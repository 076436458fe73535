// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("key not found")

// Cache defines the interface for cache operations.
// Implementations are go-cache (memory), Redis and SQLite.
//
// Values are opaque bytes; the WordPress client stores JSON encoded posts:
//
//	err := cache.Set(ctx, "wp:post:budget-speech", data, 5*time.Minute)
//	data, err := cache.Get(ctx, "wp:post:budget-speech")
//	if err != nil {
//		// miss, fetch upstream
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// A miss or an expired entry is reported as ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}