package styles

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/votecloud/votecloud/pkg/render/cloud/layout"
	"github.com/votecloud/votecloud/pkg/score"
)

const (
	WinnerFontSize = 180.0
	MinFontSize    = 22.0
	MaxFontSize    = 100.0

	// heightRatio is the minimum box height as a share of the font size.
	heightRatio = 0.8
)

// Measurer reports the advance width of text set at size pixels.
type Measurer interface {
	MeasureText(text string, size float64) float64
}

// InkMeasurer is implemented by measurers that also report how tall text is
// drawn. Words whose ink is taller than the minimum box get a taller box.
type InkMeasurer interface {
	InkHeight(text string, size float64) float64
}

// Mapper turns a ranked list into layout items.
type Mapper struct {
	Measurer Measurer
	Rand     *rand.Rand
}

// NewMapper returns a Mapper that measures with m and picks colours from rng.
func NewMapper(m Measurer, rng *rand.Rand) *Mapper {
	if rng == nil {
		rng = layout.NewRand(0)
	}
	return &Mapper{Measurer: m, Rand: rng}
}

// Map splits list into the winner and the field. winner is nil for an empty
// list; field is empty when the list has a single entry.
func (m *Mapper) Map(list score.RankedList) (winner *layout.Item, field []layout.Item) {
	top, ok := list.Winner()
	if !ok {
		return nil, nil
	}
	w := m.item(top, WinnerFontSize, WinnerColor)
	winner = &w

	rest := list.Field()
	sizes := FontSizes(rest)
	field = make([]layout.Item, len(rest))
	for i, e := range rest {
		field[i] = m.item(e, sizes[i], m.color(e.Score))
	}
	return winner, field
}

func (m *Mapper) item(e score.Entry, size float64, color string) layout.Item {
	text := strings.ToLower(e.Label)
	height := size * heightRatio
	if im, ok := m.Measurer.(InkMeasurer); ok {
		height = max(height, im.InkHeight(text, size))
	}
	return layout.Item{
		Text:     text,
		Score:    e.Score,
		FontSize: size,
		Width:    m.Measurer.MeasureText(text, size),
		Height:   height,
		Color:    color,
	}
}

func (m *Mapper) color(s int) string {
	if s == 0 {
		return Greys[m.Rand.IntN(len(Greys))]
	}
	return Palette[m.Rand.IntN(VotedPaletteSize)]
}

// FontSizes returns the pixel size of every field entry, in order.
func FontSizes(field score.RankedList) []float64 {
	if len(field) == 0 {
		return nil
	}
	lo, hi := field[0].Score, field[0].Score
	for _, e := range field[1:] {
		lo = min(lo, e.Score)
		hi = max(hi, e.Score)
	}
	span := float64(max(hi-lo, 1))

	sizes := make([]float64, len(field))
	for i, e := range field {
		normalized := float64(e.Score-lo) / span
		sizes[i] = math.Floor(MinFontSize + normalized*(MaxFontSize-MinFontSize))
	}
	return sizes
}
