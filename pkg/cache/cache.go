// Package cache stores rendered artifacts between requests.
//
// The leaderboard image is regenerated whenever votes or contacts change and
// served many times in between, so the latest PNG is kept in a [Cache]:
//   - [FileCache]: files on local disk, for a single instance or the CLI
//   - [RedisCache]: shared across instances
//   - [NullCache]: stores nothing, every read is a miss
//
// [Scoped] prefixes keys so several deployments can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value. hit is false on a miss or expired entry.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Well-known keys.
const (
	KeyLeaderboardPNG = "leaderboard:png"
	KeyRanking        = "leaderboard:ranking"
)

// TTLArtifact is how long a rendered artifact is kept. Artifacts are
// overwritten on every regeneration, so the TTL only bounds stale data left
// behind by a crashed instance.
const TTLArtifact = 24 * time.Hour
