// Package cache stores built graphs between runs.
//
// Graph construction from large road datasets (KML parsing plus R-tree
// joining) dominates start-up time, so the pipeline caches the built graph
// JSON keyed by the input content hash and join options. Three backends
// share the [Cache] interface:
//
//   - [FileCache]: one file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
