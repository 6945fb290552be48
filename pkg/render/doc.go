// Package render groups the visualizations votecloud can produce.
//
// # Overview
//
// There is one renderer today, the radial word cloud in [cloud]. It is
// split the same way every renderer here should be:
//
//   - [cloud/styles]: ranked scores to font sizes and colours
//   - [cloud/geom]: boxes, rotation and overlap tests
//   - [cloud/layout]: winner placement and the spiral search
//   - [cloud/sink]: drawing a layout on a raster canvas and encoding PNG
//
// Styles and layout never touch pixels; only the sink does. Layout tests
// use a fake measurer so they run without a font.
//
//	res, err := cloud.Render(ranking, cloud.WithSeed(7))
//
// [cloud]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render/cloud
// [cloud/styles]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render/cloud/styles
// [cloud/geom]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render/cloud/geom
// [cloud/layout]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render/cloud/layout
// [cloud/sink]: https://pkg.go.dev/github.com/votecloud/votecloud/pkg/render/cloud/sink
package render
