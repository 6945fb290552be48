// Package fonts provides the typeface used to draw word cloud labels.
//
// The Go Regular font ships inside golang.org/x/image, so the binary needs
// no system fonts. The parsed font is read-only and shared; faces carry glyph
// caches and belong to a single canvas (see [Faces]).
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the display name of the embedded font.
const FontFamily = "Go Regular"

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Parsed font (computed once on first access).
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed embedded font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Faces hands out font faces by pixel size, creating each size once.
// Canvases render at 72 DPI so points and pixels coincide.
// Faces is not safe for concurrent use.
type Faces struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewFaces returns a face cache for f.
func NewFaces(f *truetype.Font) *Faces {
	return &Faces{font: f, faces: make(map[float64]font.Face)}
}

// Face returns the face for size pixels.
func (f *Faces) Face(size float64) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.faces[size] = face
	return face
}

// Close releases every cached face.
func (f *Faces) Close() error {
	for size, face := range f.faces {
		face.Close()
		delete(f.faces, size)
	}
	return nil
}
