package metrics

import (
	"math"

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
)

// MomentumDrift is the largest relative change in angular momentum about the
// origin. With a fixed star the exact dynamics conserve it.
type MomentumDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []physics.Snapshot, t float64) {
	l := physics.AngularMomentum(bodies)
	if m.samples == 0 {
		m.initial = l
	}
	m.samples++

	if m.initial != 0 {
		m.maxDrift = math.Max(m.maxDrift, math.Abs(l-m.initial)/math.Abs(m.initial))
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// MaxDistance tracks the farthest any planet strayed from the origin, in AU.
type MaxDistance struct {
	name string
	max  float64
}

func NewMaxDistance() *MaxDistance {
	return &MaxDistance{name: "max_distance_au"}
}

func (d *MaxDistance) Name() string { return d.name }

func (d *MaxDistance) Observe(bodies []physics.Snapshot, t float64) {
	for _, b := range bodies {
		if b.Kind == physics.Star {
			continue
		}
		d.max = math.Max(d.max, math.Hypot(b.Pos.X, b.Pos.Y)/render.AU)
	}
}

func (d *MaxDistance) Value() float64 { return d.max }
func (d *MaxDistance) Reset()         { d.max = 0 }
