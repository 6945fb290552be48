package cloud

import (
	"bytes"
	"fmt"
	"image/png"
	"reflect"
	"testing"

	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/render/cloud/geom"
	"github.com/votecloud/votecloud/pkg/render/cloud/layout"
	"github.com/votecloud/votecloud/pkg/render/cloud/styles"
	"github.com/votecloud/votecloud/pkg/score"
)

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func checkLayout(t *testing.T, l layout.Layout) {
	t.Helper()
	boxes := l.Boxes()
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if geom.Overlaps(boxes[i], boxes[j], 0) {
				t.Fatalf("boxes %d and %d overlap", i, j)
			}
		}
	}
	for _, p := range l.Placements {
		if !p.Box.Inside(l.Size, layout.BorderMargin) {
			t.Errorf("%q outside [20, %v]: %+v", p.Text, l.Size-20, p.Box)
		}
		if p.FontSize < styles.MinFontSize || p.FontSize > styles.MaxFontSize {
			t.Errorf("%q font size %v out of bounds", p.Text, p.FontSize)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	res, err := Render(score.Aggregate(nil, nil))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if w, h := decodeSize(t, res.PNG); w != 2000 || h != 2000 {
		t.Errorf("image %dx%d, want 2000x2000", w, h)
	}
	if res.Layout.Winner != nil || res.Placed != 0 || res.Dropped != 0 {
		t.Errorf("expected nothing placed, got %+v", res)
	}
}

func TestRenderThreeZeroScoreLabels(t *testing.T) {
	list := score.Aggregate([]string{"Alice", "Bob", "Carol"}, nil)
	res, err := Render(list, WithSeed(1))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	w := res.Layout.Winner
	if w == nil || w.Text != "alice" || w.FontSize != 180 {
		t.Fatalf("winner = %+v, want alice at 180px", w)
	}
	if w.X != 1000 || w.Y != 1000 {
		t.Errorf("winner at (%v, %v), want centre", w.X, w.Y)
	}
	if res.Placed != 3 {
		t.Errorf("Placed = %d, want 3", res.Placed)
	}
	for _, p := range res.Layout.Placements {
		if p.FontSize != 22 {
			t.Errorf("%q size = %v, want 22", p.Text, p.FontSize)
		}
	}
	checkLayout(t, res.Layout)
}

func TestRenderVotedWinner(t *testing.T) {
	list := score.Aggregate([]string{"Alice", "Bob"}, []string{"Bob", "Bob", "Bob"})
	res, err := Render(list, WithSeed(2))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Layout.Winner.Text != "bob" {
		t.Errorf("winner = %q, want bob", res.Layout.Winner.Text)
	}
	if len(res.Layout.Placements) != 1 || res.Layout.Placements[0].Text != "alice" ||
		res.Layout.Placements[0].FontSize != 22 {
		t.Errorf("field = %+v", res.Layout.Placements)
	}
}

func TestRenderSeedReproducible(t *testing.T) {
	var universe, events []string
	for i := range 30 {
		universe = append(universe, fmt.Sprintf("Person %d", i))
		for range i % 4 {
			events = append(events, universe[i])
		}
	}
	list := score.Aggregate(universe, events)

	a, err := Render(list, WithSeed(123))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(list, WithSeed(123))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Layout, b.Layout) {
		t.Error("same seed should give identical layouts")
	}
	if !bytes.Equal(a.PNG, b.PNG) {
		t.Error("same seed should give identical images")
	}
	checkLayout(t, a.Layout)
}

func TestRenderManyLabels(t *testing.T) {
	if testing.Short() {
		t.Skip("slow: 500 labels")
	}
	universe := make([]string, 500)
	for i := range universe {
		universe[i] = fmt.Sprintf("Employee %03d", i)
	}
	res, err := Render(score.Aggregate(universe, nil), WithSeed(5))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Placed+res.Dropped != 500 {
		t.Errorf("placed %d + dropped %d != 500", res.Placed, res.Dropped)
	}
	checkLayout(t, res.Layout)
}

func TestRenderInvalidSize(t *testing.T) {
	_, err := Render(score.RankedList{{Label: "a", Score: 1}}, WithSize(0))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(size 0) error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderSmallCanvas(t *testing.T) {
	res, err := Render(score.RankedList{{Label: "a", Score: 1}}, WithSize(400), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	if w, h := decodeSize(t, res.PNG); w != 400 || h != 400 {
		t.Errorf("image %dx%d, want 400x400", w, h)
	}
	if res.Layout.Winner.X != 200 {
		t.Errorf("winner X = %v, want 200", res.Layout.Winner.X)
	}
}
