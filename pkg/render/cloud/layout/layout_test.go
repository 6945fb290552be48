package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/votecloud/votecloud/pkg/render/cloud/geom"
)

// item builds an item whose box approximates a proportional font.
func item(text string, size float64) Item {
	return Item{
		Text:     text,
		FontSize: size,
		Width:    float64(len(text)) * size * 0.55,
		Height:   size * 0.8,
		Color:    "#888888",
	}
}

func assertNoOverlap(t *testing.T, l Layout) {
	t.Helper()
	boxes := l.Boxes()
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if geom.Overlaps(boxes[i], boxes[j], 0) {
				t.Fatalf("boxes %d and %d overlap: %+v %+v", i, j, boxes[i], boxes[j])
			}
		}
	}
}

func assertInside(t *testing.T, l Layout) {
	t.Helper()
	for _, p := range l.Placements {
		if !p.Box.Inside(l.Size, BorderMargin) {
			t.Errorf("%q outside canvas margin: %+v", p.Text, p.Box)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	l := Build(nil, []Item{item("ignored", 22)}, Options{Rand: NewRand(1)})
	if l.Winner != nil || len(l.Placements) != 0 || len(l.Dropped) != 0 {
		t.Errorf("expected empty layout, got %+v", l)
	}
	if l.Size != DefaultSize {
		t.Errorf("Size = %v, want %v", l.Size, DefaultSize)
	}
}

func TestBuildWinnerOnly(t *testing.T) {
	w := item("alice", 180)
	l := Build(&w, nil, Options{Rand: NewRand(1)})

	if l.Winner == nil {
		t.Fatal("expected a winner")
	}
	if l.Winner.X != 1000 || l.Winner.Y != 1000 || l.Winner.Rotation != 0 {
		t.Errorf("winner at (%v, %v) rot %v, want centre", l.Winner.X, l.Winner.Y, l.Winner.Rotation)
	}
	want := geom.Centered(1000, 1000, w.Width, w.Height, WinnerPadding)
	if l.Winner.Box != want {
		t.Errorf("winner box = %+v, want %+v", l.Winner.Box, want)
	}
	if got := len(l.Boxes()); got != 1 {
		t.Errorf("len(Boxes()) = %d, want 1", got)
	}
}

func TestBuildThreeLabels(t *testing.T) {
	w := item("alice", 180)
	field := []Item{item("bob", 22), item("carol", 22)}

	l := Build(&w, field, Options{Rand: NewRand(7)})

	if len(l.Placements) != 2 {
		t.Fatalf("placed %d items, want 2 (dropped %v)", len(l.Placements), l.Dropped)
	}
	assertNoOverlap(t, l)
	assertInside(t, l)

	for _, p := range l.Placements {
		if p.Rotation < -MaxTilt || p.Rotation > 90 {
			t.Errorf("rotation %v out of range", p.Rotation)
		}
		if p.Rotation > MaxTilt && p.Rotation != 90 {
			t.Errorf("rotation %v above tilt range must be exactly 90", p.Rotation)
		}
	}
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	w := item("winner", 180)
	var field []Item
	for i := range 40 {
		field = append(field, item(fmt.Sprintf("label%d", i), float64(22+i*2)))
	}

	a := Build(&w, field, Options{Rand: NewRand(42)})
	b := Build(&w, field, Options{Rand: NewRand(42)})
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce identical layouts")
	}
}

func TestBuildPlacesBiggestFirst(t *testing.T) {
	w := item("w", 180)
	field := []Item{item("small", 22), item("big", 100), item("mid", 60)}

	l := Build(&w, field, Options{Rand: NewRand(3)})
	if len(l.Placements) != 3 {
		t.Fatalf("placed %d, want 3", len(l.Placements))
	}
	var order []string
	for _, p := range l.Placements {
		order = append(order, p.Text)
	}
	if want := []string{"big", "mid", "small"}; !reflect.DeepEqual(order, want) {
		t.Errorf("placement order = %v, want %v", order, want)
	}
}

func TestBuildManyZeroScoreLabels(t *testing.T) {
	if testing.Short() {
		t.Skip("slow: 500 labels")
	}
	w := item("winner", 180)
	field := make([]Item, 500)
	for i := range field {
		field[i] = item(fmt.Sprintf("person-%03d", i), 22)
	}

	l := Build(&w, field, Options{Rand: NewRand(11)})

	if got := len(l.Placements) + len(l.Dropped); got != len(field) {
		t.Errorf("placed+dropped = %d, want %d", got, len(field))
	}
	if len(l.Placements) == 0 {
		t.Error("expected at least some labels to be placed")
	}
	assertNoOverlap(t, l)
	assertInside(t, l)
}

func TestSpiralDropsWhenNoRoom(t *testing.T) {
	s := NewSpiral(DefaultSize, NewRand(5))
	s.Reserve(geom.Box{X1: 0, Y1: 0, X2: DefaultSize, Y2: DefaultSize})

	if _, ok := s.Place(item("nowhere", 22)); ok {
		t.Error("Place should fail when the canvas is fully occupied")
	}
	if got := len(s.Occupied()); got != 1 {
		t.Errorf("failed placement must not grow occupancy, got %d boxes", got)
	}
}

func TestSpiralOccupiedIsACopy(t *testing.T) {
	s := NewSpiral(DefaultSize, NewRand(5))
	s.Reserve(geom.Box{X1: 900, Y1: 900, X2: 1100, Y2: 1100})

	got := s.Occupied()
	got[0] = geom.Box{X1: 0, Y1: 0, X2: DefaultSize, Y2: DefaultSize}

	occ := s.Occupied()
	if len(occ) != 1 || occ[0] != (geom.Box{X1: 900, Y1: 900, X2: 1100, Y2: 1100}) {
		t.Errorf("Occupied() = %v, want the reserved box unchanged", occ)
	}
	if _, ok := s.Place(item("room", 22)); !ok {
		t.Error("Place should still find room around the reserved box")
	}
}

func TestSpiralRejectsOversizedItem(t *testing.T) {
	s := NewSpiral(DefaultSize, NewRand(5))
	huge := Item{Text: "huge", FontSize: 100, Width: 5000, Height: 80}
	if _, ok := s.Place(huge); ok {
		t.Error("an item wider than the canvas can never fit")
	}
}

func TestSpiralStartsOutsideStartRadius(t *testing.T) {
	s := NewSpiral(DefaultSize, NewRand(9))
	p, ok := s.Place(item("first", 50))
	if !ok {
		t.Fatal("first item on an empty canvas should always fit")
	}
	dx, dy := p.X-1000, p.Y-1000
	dist2 := dx*dx + dy*dy
	minR := StartRadius + RadiusStep - ScatterLarge/2
	if dist2 < minR*minR {
		t.Errorf("first placement at distance² %v, want ≥ %v", dist2, minR*minR)
	}
}

func TestBySize(t *testing.T) {
	in := []Item{item("a", 22), item("b", 50), item("c", 22), item("d", 100)}
	got := BySize(in)

	var order []string
	for _, it := range got {
		order = append(order, it.Text)
	}
	if want := []string{"d", "b", "a", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("BySize order = %v, want %v", order, want)
	}
	if in[0].Text != "a" {
		t.Error("BySize must not modify its input")
	}
}
