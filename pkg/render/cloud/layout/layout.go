package layout

import (
	"cmp"
	"slices"

	"github.com/votecloud/votecloud/pkg/render/cloud/geom"
)

// Item is a label ready for placement: text already lowercased, font size
// and colour chosen, box measured.
type Item struct {
	Text     string  `json:"text"`
	Score    int     `json:"score"`
	FontSize float64 `json:"font_size"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Color    string  `json:"color"`
}

// Placement is an item committed to the canvas.
type Placement struct {
	Item
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation float64  `json:"rotation"` // degrees, clockwise in canvas space
	Box      geom.Box `json:"box"`
}

// Layout is the result of one placement pass.
type Layout struct {
	Size       float64     `json:"size"`
	Winner     *Placement  `json:"winner,omitempty"`
	Placements []Placement `json:"placements"`
	Dropped    []Item      `json:"dropped,omitempty"`
}

// Boxes returns the occupied boxes in placement order, winner first.
func (l Layout) Boxes() []geom.Box {
	boxes := make([]geom.Box, 0, len(l.Placements)+1)
	if l.Winner != nil {
		boxes = append(boxes, l.Winner.Box)
	}
	for _, p := range l.Placements {
		boxes = append(boxes, p.Box)
	}
	return boxes
}

// Build centres winner on the canvas and spirals the field around it.
// A nil winner yields an empty layout regardless of field.
func Build(winner *Item, field []Item, opts Options) Layout {
	opts.setDefaults()
	l := Layout{Size: opts.Size}
	if winner == nil {
		return l
	}

	center := opts.Size / 2
	w := &Placement{
		Item: *winner,
		X:    center,
		Y:    center,
		Box:  geom.Centered(center, center, winner.Width, winner.Height, WinnerPadding),
	}
	l.Winner = w

	s := NewSpiral(opts.Size, opts.Rand)
	s.Reserve(w.Box)

	for _, it := range BySize(field) {
		if p, ok := s.Place(it); ok {
			l.Placements = append(l.Placements, p)
		} else {
			l.Dropped = append(l.Dropped, it)
		}
	}
	return l
}

// BySize returns a copy of items sorted by descending font size. Items of
// equal size keep their relative order.
func BySize(items []Item) []Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Compare(b.FontSize, a.FontSize)
	})
	return sorted
}
