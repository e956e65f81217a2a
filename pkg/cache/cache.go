// Package cache stores fetched tables and rendered screenshots.
//
// Two things are slow in a stockcards run: fetching a sheet over the network
// and capturing a page with a headless browser. Both are keyed by content
// here so repeated runs on the same day reuse earlier results.
//
// # Backends
//
//   - [FileCache]: JSON entries under the user cache directory (default)
//   - [RedisCache]: a shared Redis instance, for runs on several machines
//   - [NullCache]: caching disabled (--no-cache)
//
// # Keys
//
// A [Keyer] builds keys for each kind of entry. [DefaultKeyer] hashes the
// inputs that determine the value; [NewScopedKeyer] prefixes every key so
// several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// TTLs for the entry kinds.
const (
	// TTLTable bounds how long a fetched table is reused. Sheets are
	// edited during the trading day, so this stays short.
	TTLTable = 10 * time.Minute

	// TTLArtifact bounds how long a rendered page is reused. Artifacts are
	// keyed by their HTML, so a stale entry can only be an identical page.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry reports
	// false with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
