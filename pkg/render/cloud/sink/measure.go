package sink

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/votecloud/votecloud/pkg/fonts"
)

// Measurer reports text advances using the same faces the canvas draws with.
// It is not safe for concurrent use.
type Measurer struct {
	faces *fonts.Faces
}

// NewMeasurer returns a Measurer for f.
func NewMeasurer(f *truetype.Font) *Measurer {
	return &Measurer{faces: fonts.NewFaces(f)}
}

// MeasureText returns the advance width of text at size pixels.
func (m *Measurer) MeasureText(text string, size float64) float64 {
	adv := font.MeasureString(m.faces.Face(size), text)
	return float64(adv) / 64
}

// InkHeight returns the height of the pixels text covers at size pixels,
// from the top of its tallest glyph to the bottom of its lowest descender.
func (m *Measurer) InkHeight(text string, size float64) float64 {
	b, _ := font.BoundString(m.faces.Face(size), text)
	return float64(b.Max.Y-b.Min.Y) / 64
}

// Close releases cached faces.
func (m *Measurer) Close() error {
	return m.faces.Close()
}
