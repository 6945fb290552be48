// Package layout positions word cloud labels on a square canvas.
//
// The top-ranked label (the winner) sits at the exact centre. Every other
// label walks outward along an Archimedean spiral starting 300px from the
// centre, with random jitter on angle and radius and a random tilt, until it
// finds a spot whose bounding box stays clear of the canvas border and of
// everything placed before it.
//
// # Algorithm
//
// Items are placed biggest first so the dominant labels claim the space near
// the winner. For each item, up to [MaxAttempts] candidates are generated:
//
//	angle  += 0.25            radius += 0.6
//	θ       = angle + U(-0.25, 0.25)
//	r       = radius + U(-scatter/2, scatter/2)   scatter = 40 if size < 30 else 15
//	centre  = canvas centre + r·(cos θ, sin θ)
//	tilt    = U(-70°, 70°), or 0°/90° with probability 0.3
//
// A candidate is rejected if its rotated bounding box comes within 20px of
// the border or within 5px of an occupied box. The first survivor wins.
// Items that exhaust their attempts are dropped and reported in
// [Layout.Dropped]; this is best effort, not an error.
//
// # Randomness
//
// All random draws come from the *rand.Rand handed to [NewSpiral] or set in
// [Options.Rand], so a fixed seed reproduces a layout exactly.
package layout
