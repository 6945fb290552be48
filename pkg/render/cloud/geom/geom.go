// Package geom provides the axis-aligned box arithmetic used by the word
// cloud layout: bounding boxes of rotated label rectangles and overlap
// tests between them.
package geom

import "math"

// Box is an axis-aligned rectangle in canvas pixels with X1 <= X2, Y1 <= Y2.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width returns the horizontal extent of b.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of b.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Expand grows b by m pixels on every side.
func (b Box) Expand(m float64) Box {
	return Box{X1: b.X1 - m, Y1: b.Y1 - m, X2: b.X2 + m, Y2: b.Y2 + m}
}

// Inside reports whether b keeps at least margin pixels away from every edge
// of a size×size canvas.
func (b Box) Inside(size, margin float64) bool {
	return b.X1 >= margin && b.Y1 >= margin && b.X2 <= size-margin && b.Y2 <= size-margin
}

// Collides reports whether b, expanded by margin, overlaps any box in placed.
func (b Box) Collides(placed []Box, margin float64) bool {
	for _, p := range placed {
		if Overlaps(b, p, margin) {
			return true
		}
	}
	return false
}

// Centered returns the box of a w×h rectangle centred on (cx, cy), padded by
// pad on every side.
func Centered(cx, cy, w, h, pad float64) Box {
	return Box{
		X1: cx - w/2 - pad,
		Y1: cy - h/2 - pad,
		X2: cx + w/2 + pad,
		Y2: cy + h/2 + pad,
	}
}

// Overlaps expands a by margin and reports whether it intersects b. Boxes
// that merely touch count as overlapping.
func Overlaps(a, b Box, margin float64) bool {
	a = a.Expand(margin)
	return !(a.X2 < b.X1 || a.X1 > b.X2 || a.Y2 < b.Y1 || a.Y1 > b.Y2)
}

// RotatedBBox returns the axis-aligned bounding box of a w×h rectangle
// centred on (cx, cy) after rotating it by angleDeg degrees about its centre.
func RotatedBBox(cx, cy, w, h, angleDeg float64) Box {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)

	corners := [4][2]float64{
		{-w / 2, -h / 2},
		{w / 2, -h / 2},
		{w / 2, h / 2},
		{-w / 2, h / 2},
	}

	box := Box{X1: math.Inf(1), Y1: math.Inf(1), X2: math.Inf(-1), Y2: math.Inf(-1)}
	for _, c := range corners {
		x := cx + c[0]*cos - c[1]*sin
		y := cy + c[0]*sin + c[1]*cos
		box.X1 = min(box.X1, x)
		box.Y1 = min(box.Y1, y)
		box.X2 = max(box.X2, x)
		box.Y2 = max(box.Y2, y)
	}
	return box
}
