// Package sink draws word cloud layouts onto a raster canvas and encodes
// them as PNG.
//
// Drawing is done with fogleman/gg on an RGBA surface. Labels are drawn
// centred on their placement point and rotated about it, so the glyphs fall
// inside the bounding box computed by the layout package.
//
//	png, err := sink.RenderPNG(l, sink.WithFont(f))
//
// [Measurer] exposes the same font metrics to the styles package, which needs
// label widths before layout can start.
package sink
