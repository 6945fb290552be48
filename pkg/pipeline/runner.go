package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/votecloud/votecloud/pkg/cache"
	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/observability"
	"github.com/votecloud/votecloud/pkg/render/cloud"
	"github.com/votecloud/votecloud/pkg/score"
	"github.com/votecloud/votecloud/pkg/store"
)

// Runner regenerates and serves the leaderboard.
//
// Runner keeps no results of its own; the latest artifact lives in Cache.
// It is safe for concurrent use.
type Runner struct {
	Store  store.Store
	Cache  cache.Cache
	Logger *log.Logger

	// Seed fixes the word cloud randomness. Zero draws a new seed per render.
	Seed uint64

	// RenderOptions are appended to every cloud.Render call.
	RenderOptions []cloud.Option

	mu sync.Mutex
}

// NewRunner creates a runner over s.
// If c is nil, a NullCache is used (every read regenerates).
// If logger is nil, output is discarded.
func NewRunner(s store.Store, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Store: s, Cache: c, Logger: logger}
}

// Ranking scores the current roster and votes.
func (r *Runner) Ranking(ctx context.Context) (score.RankedList, error) {
	universe, events, err := store.Ballot(ctx, r.Store)
	if err != nil {
		return nil, err
	}
	return score.Aggregate(universe, events), nil
}

// Regenerate renders the current state and replaces the cached leaderboard.
func (r *Runner) Regenerate(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.regenerate(ctx)
}

func (r *Runner) regenerate(ctx context.Context) (*Result, error) {
	ranking, err := r.Ranking(ctx)
	if err != nil {
		return nil, err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, len(ranking))

	opts := append([]cloud.Option{cloud.WithSeed(r.Seed), cloud.WithLogger(r.Logger)}, r.RenderOptions...)
	rendered, err := cloud.Render(ranking, opts...)
	if err != nil {
		hooks.OnRenderComplete(ctx, len(ranking), 0, 0, 0, err)
		return nil, err
	}
	hooks.OnRenderComplete(ctx, rendered.Labels, rendered.Placed, rendered.Dropped, rendered.Duration, nil)

	res := &Result{
		Ranking:  ranking,
		PNG:      rendered.PNG,
		Placed:   rendered.Placed,
		Dropped:  rendered.Dropped,
		Duration: rendered.Duration,
	}

	if err := r.put(ctx, cache.KeyLeaderboardPNG, res.PNG); err != nil {
		return nil, err
	}
	data, err := json.Marshal(ranking)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode ranking")
	}
	if err := r.put(ctx, cache.KeyRanking, data); err != nil {
		return nil, err
	}

	r.Logger.Info("regenerated leaderboard",
		"labels", len(ranking),
		"placed", res.Placed,
		"dropped", res.Dropped,
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

// Leaderboard returns the cached leaderboard PNG, regenerating it on a miss.
// cached reports whether the image came from the cache.
func (r *Runner) Leaderboard(ctx context.Context) (png []byte, cached bool, err error) {
	if data, hit := r.lookup(ctx, cache.KeyLeaderboardPNG); hit {
		return data, true, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have filled the cache while we waited.
	if data, hit, err := r.Cache.Get(ctx, cache.KeyLeaderboardPNG); err == nil && hit {
		return data, true, nil
	}
	res, err := r.regenerate(ctx)
	if err != nil {
		return nil, false, err
	}
	return res.PNG, false, nil
}

// Standings returns the ranking the current leaderboard image was drawn
// from, regenerating on a miss.
func (r *Runner) Standings(ctx context.Context) (score.RankedList, error) {
	if data, hit := r.lookup(ctx, cache.KeyRanking); hit {
		var ranking score.RankedList
		if err := json.Unmarshal(data, &ranking); err == nil {
			return ranking, nil
		}
		r.Logger.Warn("discarding unreadable cached ranking")
	}
	res, err := r.Regenerate(ctx)
	if err != nil {
		return nil, err
	}
	return res.Ranking, nil
}

// Invalidate drops the cached artifacts so the next read regenerates.
func (r *Runner) Invalidate(ctx context.Context) error {
	for _, key := range []string{cache.KeyLeaderboardPNG, cache.KeyRanking} {
		if err := r.Cache.Delete(ctx, key); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "invalidate %s", key)
		}
	}
	return nil
}

// Close releases the store and the cache.
func (r *Runner) Close() error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// lookup reads key from the cache and reports the hit or miss to the
// observability hooks. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

func (r *Runner) put(ctx context.Context, key string, data []byte) error {
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "cache %s", key)
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}
