package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache and prepends a prefix to every key.
// This is useful when several deployments share one Redis:
//
//	c := cache.NewScoped(redisCache, "votecloud:office-a:")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner. A nil inner behaves like a
// NullCache.
func NewScoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Key returns the key as stored in the inner cache.
func (s *Scoped) Key(key string) string {
	return s.prefix + key
}

// Get retrieves a prefixed value.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.Key(key))
}

// Set stores a prefixed value.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.Key(key), data, ttl)
}

// Delete removes a prefixed value.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.Key(key))
}

// Close closes the inner cache.
func (s *Scoped) Close() error {
	return s.inner.Close()
}

var _ Cache = (*Scoped)(nil)
