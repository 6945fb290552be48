package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func boxNear(a, b Box) bool {
	return math.Abs(a.X1-b.X1) < eps && math.Abs(a.Y1-b.Y1) < eps &&
		math.Abs(a.X2-b.X2) < eps && math.Abs(a.Y2-b.Y2) < eps
}

func TestRotatedBBox(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		w, h   float64
		angle  float64
		want   Box
	}{
		{
			name: "no rotation",
			cx:   100, cy: 50, w: 40, h: 10, angle: 0,
			want: Box{X1: 80, Y1: 45, X2: 120, Y2: 55},
		},
		{
			name: "quarter turn swaps extents",
			cx:   100, cy: 50, w: 40, h: 10, angle: 90,
			want: Box{X1: 95, Y1: 30, X2: 105, Y2: 70},
		},
		{
			name: "half turn is identity",
			cx:   0, cy: 0, w: 40, h: 10, angle: 180,
			want: Box{X1: -20, Y1: -5, X2: 20, Y2: 5},
		},
		{
			name: "negative quarter turn",
			cx:   10, cy: 10, w: 8, h: 2, angle: -90,
			want: Box{X1: 9, Y1: 6, X2: 11, Y2: 14},
		},
		{
			name: "square at 45 degrees",
			cx:   0, cy: 0, w: 2, h: 2, angle: 45,
			want: Box{X1: -math.Sqrt2, Y1: -math.Sqrt2, X2: math.Sqrt2, Y2: math.Sqrt2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotatedBBox(tt.cx, tt.cy, tt.w, tt.h, tt.angle)
			if !boxNear(got, tt.want) {
				t.Errorf("RotatedBBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRotatedBBoxContainsCorners(t *testing.T) {
	for deg := -70.0; deg <= 90; deg += 7.5 {
		b := RotatedBBox(500, 500, 120, 30, deg)
		want := math.Abs(120*math.Cos(deg*math.Pi/180)) + math.Abs(30*math.Sin(deg*math.Pi/180))
		if math.Abs(b.Width()-want) > 1e-6 {
			t.Errorf("angle %v: width = %v, want %v", deg, b.Width(), want)
		}
		if math.Abs((b.X1+b.X2)/2-500) > 1e-6 || math.Abs((b.Y1+b.Y2)/2-500) > 1e-6 {
			t.Errorf("angle %v: box %+v not centred", deg, b)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := Box{X1: 0, Y1: 0, X2: 10, Y2: 10}
	tests := []struct {
		name   string
		a      Box
		margin float64
		want   bool
	}{
		{"identical", base, 0, true},
		{"contained", Box{2, 2, 4, 4}, 0, true},
		{"partial", Box{5, 5, 15, 15}, 0, true},
		{"touching edge", Box{10, 0, 20, 10}, 0, true},
		{"left of", Box{-20, 0, -1, 10}, 0, false},
		{"right of", Box{11, 0, 20, 10}, 0, false},
		{"above", Box{0, -20, 10, -1}, 0, false},
		{"below", Box{0, 11, 10, 20}, 0, false},
		{"gap closed by margin", Box{13, 0, 20, 10}, 5, true},
		{"gap wider than margin", Box{16, 0, 20, 10}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, base, tt.margin); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollides(t *testing.T) {
	placed := []Box{{0, 0, 10, 10}, {100, 100, 110, 110}}

	if !(Box{105, 105, 120, 120}).Collides(placed, 0) {
		t.Error("expected collision with second box")
	}
	if (Box{50, 50, 60, 60}).Collides(placed, 5) {
		t.Error("unexpected collision")
	}
	if (Box{50, 50, 60, 60}).Collides(nil, 5) {
		t.Error("empty occupancy set never collides")
	}
}

func TestInside(t *testing.T) {
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"well inside", Box{100, 100, 200, 200}, true},
		{"on margin", Box{20, 20, 1980, 1980}, true},
		{"left edge", Box{19, 100, 200, 200}, false},
		{"top edge", Box{100, 19.5, 200, 200}, false},
		{"right edge", Box{100, 100, 1981, 200}, false},
		{"bottom edge", Box{100, 100, 200, 1990}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Inside(2000, 20); got != tt.want {
				t.Errorf("Inside() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCentered(t *testing.T) {
	got := Centered(1000, 1000, 200, 144, 30)
	want := Box{X1: 870, Y1: 898, X2: 1130, Y2: 1102}
	if !boxNear(got, want) {
		t.Errorf("Centered() = %+v, want %+v", got, want)
	}
}
