package sink

import (
	"bytes"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/fonts"
	"github.com/votecloud/votecloud/pkg/render/cloud/layout"
	"github.com/votecloud/votecloud/pkg/render/cloud/styles"
)

// Canvas is a square raster surface owned by one render pass.
type Canvas struct {
	dc    *gg.Context
	faces *fonts.Faces
	size  int
}

// NewCanvas allocates a size×size surface drawing text with f.
func NewCanvas(size int, f *truetype.Font) (*Canvas, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %d", size)
	}
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas requires a font")
	}
	return &Canvas{
		dc:    gg.NewContext(size, size),
		faces: fonts.NewFaces(f),
		size:  size,
	}, nil
}

// Size returns the edge length in pixels.
func (c *Canvas) Size() int { return c.size }

// Fill paints the whole surface with a hex colour.
func (c *Canvas) Fill(hex string) {
	c.dc.SetHexColor(hex)
	c.dc.Clear()
}

// DrawLabel draws p's text rotated by p.Rotation with its advance centred
// horizontally and its ink centred vertically on the position, so the glyphs
// stay inside the box the layout reserved.
func (c *Canvas) DrawLabel(p layout.Placement) {
	c.dc.Push()
	defer c.dc.Pop()

	c.dc.Translate(p.X, p.Y)
	if p.Rotation != 0 {
		c.dc.Rotate(gg.Radians(p.Rotation))
	}
	face := c.faces.Face(p.FontSize)
	c.dc.SetFontFace(face)
	c.dc.SetHexColor(p.Color)

	ink, advance := font.BoundString(face, p.Text)
	c.dc.DrawString(p.Text, -float64(advance)/128, -float64(ink.Min.Y+ink.Max.Y)/128)
}

// DrawLayout draws the winner followed by every placement.
func (c *Canvas) DrawLayout(l layout.Layout) {
	if l.Winner != nil {
		c.DrawLabel(*l.Winner)
	}
	for _, p := range l.Placements {
		c.DrawLabel(p)
	}
}

// Image returns the underlying raster.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the surface to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// Close releases cached font faces.
func (c *Canvas) Close() error {
	return c.faces.Close()
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	font       *truetype.Font
	background string
}

// WithFont sets the label font (default: the embedded Go Regular).
func WithFont(f *truetype.Font) PNGOption {
	return func(r *pngRenderer) { r.font = f }
}

// WithBackground sets the canvas fill colour (default black).
func WithBackground(hex string) PNGOption {
	return func(r *pngRenderer) { r.background = hex }
}

// RenderPNG draws l on a fresh canvas and returns the encoded image.
// An empty layout produces a background-only image.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{background: styles.Background}
	for _, opt := range opts {
		opt(&r)
	}
	if r.font == nil {
		f, err := fonts.Regular()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
		}
		r.font = f
	}

	c, err := NewCanvas(int(l.Size), r.font)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	c.Fill(r.background)
	c.DrawLayout(l)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
