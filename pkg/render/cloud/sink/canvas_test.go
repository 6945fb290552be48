package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"testing"

	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/fonts"
	"github.com/votecloud/votecloud/pkg/render/cloud/geom"
	"github.com/votecloud/votecloud/pkg/render/cloud/layout"
)

func TestRenderPNGEmptyLayout(t *testing.T) {
	data, err := RenderPNG(layout.Layout{Size: 200})
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("bounds = %v, want 200x200", b)
	}
	for _, pt := range [][2]int{{0, 0}, {100, 100}, {199, 199}} {
		r, g, b, a := img.At(pt[0], pt[1]).RGBA()
		if r != 0 || g != 0 || b != 0 || a != 0xffff {
			t.Errorf("pixel %v = (%d,%d,%d,%d), want opaque black", pt, r, g, b, a)
		}
	}
}

func TestRenderPNGDrawsWinner(t *testing.T) {
	f, err := fonts.Regular()
	if err != nil {
		t.Fatal(err)
	}
	m := NewMeasurer(f)
	defer m.Close()

	w := layout.Placement{
		Item: layout.Item{Text: "mmm", FontSize: 80, Color: "#FFFFFF"},
		X:    200, Y: 200,
	}
	w.Width = m.MeasureText(w.Text, w.FontSize)
	w.Height = w.FontSize * 0.8
	w.Box = geom.Centered(w.X, w.Y, w.Width, w.Height, 0)

	data, err := RenderPNG(layout.Layout{Size: 400, Winner: &w}, WithFont(f))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	lit := 0
	for y := int(w.Box.Y1); y <= int(w.Box.Y2); y++ {
		for x := int(w.Box.X1); x <= int(w.Box.X2); x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0x8000 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected bright pixels inside the winner box")
	}

	if r, _, _, _ := img.At(5, 5).RGBA(); r != 0 {
		t.Error("corner should stay background")
	}
}

func TestDrawLabelInkInsideBox(t *testing.T) {
	f, err := fonts.Regular()
	if err != nil {
		t.Fatal(err)
	}
	m := NewMeasurer(f)
	defer m.Close()

	const (
		canvas = 600
		center = 300.0
		slack  = 3.0 // antialiasing and bilinear bleed
	)
	tests := []struct {
		text     string
		size     float64
		rotation float64
	}{
		{"mmm", 40, 0},
		{"mmm", 180, 0},
		{"alice", 100, 0},
		{"alice", 180, 0},
		{"glyph", 40, 0},
		{"glyph", 100, 0},
		{"glyph", 180, 0},
		{"glyph", 100, 90},
		{"philip", 100, -90},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v/%v", tt.text, tt.size, tt.rotation), func(t *testing.T) {
			p := layout.Placement{
				Item:     layout.Item{Text: tt.text, FontSize: tt.size, Color: "#FFFFFF"},
				X:        center,
				Y:        center,
				Rotation: tt.rotation,
			}
			p.Width = m.MeasureText(p.Text, p.FontSize)
			p.Height = max(p.FontSize*0.8, m.InkHeight(p.Text, p.FontSize))
			p.Box = geom.RotatedBBox(p.X, p.Y, p.Width, p.Height, p.Rotation)

			data, err := RenderPNG(layout.Layout{Size: canvas, Placements: []layout.Placement{p}}, WithFont(f))
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			ink := geom.Box{X1: canvas, Y1: canvas, X2: -1, Y2: -1}
			for y := range canvas {
				for x := range canvas {
					if r, _, _, _ := img.At(x, y).RGBA(); r > 0x1000 {
						ink.X1 = min(ink.X1, float64(x))
						ink.Y1 = min(ink.Y1, float64(y))
						ink.X2 = max(ink.X2, float64(x+1))
						ink.Y2 = max(ink.Y2, float64(y+1))
					}
				}
			}
			if ink.X2 < 0 {
				t.Fatal("nothing was drawn")
			}

			box := p.Box.Expand(slack)
			if ink.X1 < box.X1 || ink.Y1 < box.Y1 || ink.X2 > box.X2 || ink.Y2 > box.Y2 {
				t.Errorf("ink %+v escapes box %+v", ink, p.Box)
			}
			if tt.rotation == 0 {
				if mid := (ink.Y1 + ink.Y2) / 2; math.Abs(mid-p.Y) > slack {
					t.Errorf("ink centred at y=%.1f, want %.1f", mid, p.Y)
				}
			}
		})
	}
}

func TestRenderPNGBackgroundOption(t *testing.T) {
	data, err := RenderPNG(layout.Layout{Size: 10}, WithBackground("#FF0000"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(3, 3).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("pixel = (%d,%d,%d), want red", r, g, b)
	}
}

func TestNewCanvasInvalid(t *testing.T) {
	f, _ := fonts.Regular()
	tests := []struct {
		name string
		size int
	}{
		{"zero", 0},
		{"negative", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCanvas(tt.size, f)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("NewCanvas(%d) error = %v, want INVALID_INPUT", tt.size, err)
			}
		})
	}

	if _, err := NewCanvas(10, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewCanvas without font error = %v, want INVALID_INPUT", err)
	}
}

func TestMeasurer(t *testing.T) {
	f, err := fonts.Regular()
	if err != nil {
		t.Fatal(err)
	}
	m := NewMeasurer(f)
	defer m.Close()

	short := m.MeasureText("bob", 22)
	long := m.MeasureText("bobbybobson", 22)
	big := m.MeasureText("bob", 100)

	if short <= 0 {
		t.Fatalf("MeasureText() = %v, want > 0", short)
	}
	if long <= short {
		t.Errorf("longer text %v should measure wider than %v", long, short)
	}
	if big <= short {
		t.Errorf("larger size %v should measure wider than %v", big, short)
	}
	if m.MeasureText("", 40) != 0 {
		t.Error("empty text should have zero width")
	}
}
