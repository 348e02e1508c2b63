// Package cache stores fetched profile documents and rendered artifacts.
//
// Four backends implement [Cache]:
//   - [MemoryCache]: in-process map, the default for `mandev serve`
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: shared cache for multiple server replicas
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so that every backend sees the same
// namespace layout.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
