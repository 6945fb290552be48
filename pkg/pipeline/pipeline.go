// Package pipeline turns stored votes into the leaderboard image.
//
// The pipeline has three stages, run by a [Runner]:
//
//  1. Load: read the roster and votes from a store.Store
//  2. Score: aggregate them into a ranked list (score.Aggregate)
//  3. Render: draw the word cloud (cloud.Render) and cache the PNG
//
// The HTTP server and the CLI share one Runner so both serve the same cached
// artifact. Regenerations are serialized: a second caller waits for the
// first pass to finish and then renders the newer state.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, cache, logger)
//	if _, err := runner.Regenerate(ctx); err != nil {
//	    return err
//	}
//	png, cached, err := runner.Leaderboard(ctx)
package pipeline

import (
	"time"

	"github.com/votecloud/votecloud/pkg/score"
)

// Result is the outcome of one regeneration.
type Result struct {
	Ranking  score.RankedList
	PNG      []byte
	Placed   int // labels drawn, winner included
	Dropped  int // labels that found no free spot
	Duration time.Duration
}
