// Package cloud renders a ranked score list as a radial word cloud PNG.
//
// # Overview
//
// [Render] is the single entry point. It runs one self-contained pass:
//
//  1. [styles.Mapper] picks font sizes and colours and measures every label
//  2. [layout.Build] centres the winner and spirals the field around it
//  3. [sink.RenderPNG] paints the result on a black 2000×2000 canvas
//
// Nothing survives between passes. Two calls with the same input differ in
// colours and positions unless a seed is given with [WithSeed].
//
//	list := score.Aggregate(labels, votes)
//	res, err := cloud.Render(list, cloud.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("leaderboard.png", res.PNG, 0o644)
//
// Labels that find no free spot are left out of the image. They are listed
// in res.Layout.Dropped and counted in res.Dropped; a render with drops is
// still a successful render.
//
// Subpackages:
//   - [geom]: rotated bounding boxes and overlap tests
//   - [layout]: spiral placement
//   - [styles]: size/colour mapping
//   - [sink]: raster drawing and PNG encoding
//
// [geom]: github.com/votecloud/votecloud/pkg/render/cloud/geom
// [layout]: github.com/votecloud/votecloud/pkg/render/cloud/layout
// [styles]: github.com/votecloud/votecloud/pkg/render/cloud/styles
// [sink]: github.com/votecloud/votecloud/pkg/render/cloud/sink
package cloud
