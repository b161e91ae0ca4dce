package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// strideDivisor scales the squared distance of the first sample into a
// drawing stride.
var strideDivisor = math.Exp(10)

// Trail records screen-space positions of a body until it has gone once
// around the origin.
//
// Revolution detection sums the polar angle of every recorded position and
// stops when that running sum is negative and the next angle would push it
// above zero. The rule approximates "back through the start angle"; it is
// not an exact revolution counter and can misfire on eccentric orbits.
type Trail struct {
	angle     float64
	completed bool
	samples   []r2.Vec
	// centre is the projected physical origin when the first sample was taken.
	centre r2.Vec
}

func NewTrail() *Trail {
	return &Trail{samples: make([]r2.Vec, 0, 128)}
}

// Update takes the body's physical x, y, its projected screen point and the
// projected physical origin. It reports whether the screen point was
// appended.
func (t *Trail) Update(x, y float64, screen, centre r2.Vec) bool {
	if t.completed {
		return false
	}

	theta := math.Atan2(y, x)
	if t.angle < 0 && t.angle+theta > 0 {
		t.completed = true
		return false
	}

	if len(t.samples) == 0 {
		t.centre = centre
	}
	t.samples = append(t.samples, screen)
	t.angle += theta
	return true
}

func (t *Trail) Completed() bool           { return t.completed }
func (t *Trail) Len() int                  { return len(t.samples) }
func (t *Trail) AccumulatedAngle() float64 { return t.angle }

// Samples returns the recorded points in chronological order. The slice is
// shared with the trail and must not be modified.
func (t *Trail) Samples() []r2.Vec {
	return t.samples
}

// Stride is the step between drawn samples: the squared screen distance of
// the first sample from the projected physical origin divided by e¹⁰, never
// below 1. Wider orbits draw sparser trails.
func (t *Trail) Stride() int {
	if len(t.samples) == 0 {
		return 1
	}
	n := int(math.Floor(r2.Norm2(r2.Sub(t.samples[0], t.centre)) / strideDivisor))
	if n < 1 {
		return 1
	}
	return n
}

// Visible returns every Stride-th sample, starting with the first.
func (t *Trail) Visible() []r2.Vec {
	stride := t.Stride()
	out := make([]r2.Vec, 0, len(t.samples)/stride+1)
	for i := 0; i < len(t.samples); i += stride {
		out = append(out, t.samples[i])
	}
	return out
}
