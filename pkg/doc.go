// Package pkg provides the core libraries for votecloud.
//
// # Overview
//
// Votecloud collects one vote per employee and draws the standings as a
// radial word cloud: the winner large in the centre, everyone else
// spiralling outward by score. The pkg directory is organized into:
//
//  1. [score] - Vote aggregation into a ranked list
//  2. [render] - Word cloud layout and rasterization
//  3. [store] - Contacts, questions and votes (JSON files or MongoDB)
//  4. [cache] - Rendered leaderboard artifacts (files or Redis)
//  5. [pipeline] - Orchestration (load → aggregate → render → cache)
//  6. [server] and [client] - HTTP API and its Go client
//
// # Architecture
//
// The data flow of one regeneration:
//
//	contacts + votes (store)
//	         ↓
//	    [score] package (aggregate into a RankedList)
//	         ↓
//	    [render/cloud] package (map styles, place on a spiral, draw)
//	         ↓
//	    PNG bytes → [cache]
//
// # Quick Start
//
// Render a word cloud from in-memory data:
//
//	import (
//	    "github.com/votecloud/votecloud/pkg/render/cloud"
//	    "github.com/votecloud/votecloud/pkg/score"
//	)
//
//	ranking := score.Aggregate(
//	    []string{"Alice", "Bob", "Carol"},
//	    []string{"Bob", "Bob", "Carol"},
//	)
//	res, err := cloud.Render(ranking, cloud.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("cloud.png", res.PNG, 0o644)
//
// # Supporting Packages
//
//   - [config]: TOML configuration
//   - [errors]: Coded errors shared by every layer
//   - [fonts]: Embedded font faces
//   - [observability]: Render, cache and HTTP hooks
//   - [buildinfo]: Version information set at link time
//
// [score]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/score
// [render]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render
// [render/cloud]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render/cloud
// [store]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/store
// [cache]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/server
// [client]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/client
// [config]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/config
// [errors]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/buildinfo
package pkg
