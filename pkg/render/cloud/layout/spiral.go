package layout

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/votecloud/votecloud/pkg/render/cloud/geom"
)

// Placement constants. Angles for the spiral walk are in radians, tilts in
// degrees, everything else in canvas pixels.
const (
	DefaultSize     = 2000.0
	StartRadius     = 300.0
	MaxAttempts     = 800
	AngleStep       = 0.25
	RadiusStep      = 0.6
	AngleJitter     = 0.25
	ScatterSmall    = 40.0
	ScatterLarge    = 15.0
	SmallFontSize   = 30.0
	MaxTilt         = 70.0
	AxisAlignedOdds = 0.3
	BorderMargin    = 20.0
	CollisionMargin = 5.0
	WinnerPadding   = 30.0
)

// Options configures [Build].
type Options struct {
	Size float64    // canvas edge length, default DefaultSize
	Rand *rand.Rand // random source, default unseeded PCG
}

func (o *Options) setDefaults() {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Rand == nil {
		o.Rand = NewRand(0)
	}
}

// NewRand returns a PCG-backed generator. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Spiral searches for free positions on a canvas and remembers every box it
// has handed out. A Spiral belongs to a single layout pass and is not safe
// for concurrent use.
type Spiral struct {
	size     float64
	rng      *rand.Rand
	occupied []geom.Box
}

// NewSpiral returns a placer for a size×size canvas drawing from rng.
func NewSpiral(size float64, rng *rand.Rand) *Spiral {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Spiral{size: size, rng: rng}
}

// Reserve marks b as occupied without placing anything.
func (s *Spiral) Reserve(b geom.Box) {
	s.occupied = append(s.occupied, b)
}

// Occupied returns a copy of the boxes placed or reserved so far.
func (s *Spiral) Occupied() []geom.Box {
	return slices.Clone(s.occupied)
}

// Place walks the spiral for it and commits the first candidate that fits.
// ok is false when every attempt was rejected; nothing is recorded then.
func (s *Spiral) Place(it Item) (p Placement, ok bool) {
	center := s.size / 2
	angle, radius := 0.0, StartRadius

	scatter := ScatterLarge
	if it.FontSize < SmallFontSize {
		scatter = ScatterSmall
	}

	for range MaxAttempts {
		angle += AngleStep
		radius += RadiusStep

		theta := angle + s.uniform(-AngleJitter, AngleJitter)
		r := radius + s.uniform(-scatter/2, scatter/2)
		x := center + r*math.Cos(theta)
		y := center + r*math.Sin(theta)
		tilt := s.tilt()

		box := geom.RotatedBBox(x, y, it.Width, it.Height, tilt)
		if !box.Inside(s.size, BorderMargin) {
			continue
		}
		if box.Collides(s.occupied, CollisionMargin) {
			continue
		}

		s.occupied = append(s.occupied, box)
		return Placement{Item: it, X: x, Y: y, Rotation: tilt, Box: box}, true
	}
	return Placement{}, false
}

func (s *Spiral) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// tilt favours readable near-horizontal angles with the occasional label
// snapped to horizontal or vertical.
func (s *Spiral) tilt() float64 {
	deg := s.uniform(-MaxTilt, MaxTilt)
	if s.rng.Float64() < AxisAlignedOdds {
		if s.rng.Float64() < 0.5 {
			return 0
		}
		return 90
	}
	return deg
}
