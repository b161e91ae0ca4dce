package sim

import (
	"errors"

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
	"golang.org/x/time/rate"
)

var (
	// ErrInvalidTimestep indicates a non-positive or non-finite timestep.
	ErrInvalidTimestep = errors.New("sim: timestep must be positive")

	// ErrUnknownIntegrator indicates an integrator name with no implementation.
	ErrUnknownIntegrator = errors.New("sim: unknown integrator")
)

type Metric interface {
	Name() string
	Observe(bodies []physics.Snapshot, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []physics.Snapshot, t float64)
}

// RunConfig controls a headless run.
type RunConfig struct {
	Steps int
	// RecordEvery keeps one frame in Result every n steps; 0 or 1 keeps all.
	RecordEvery int
	// Limiter paces steps when non-nil.
	Limiter *rate.Limiter
	// Surface receives the draw pass after every step. Nil draws onto a
	// blank surface of render.DefaultWidth x render.DefaultHeight.
	Surface render.Renderer
}

// Result holds the recorded frames of a headless run. Frames[i] is the body
// state at Times[i].
type Result struct {
	Times       []float64
	Frames      [][]physics.Snapshot
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	// Completed maps a body id to the step on which its trail froze.
	Completed map[physics.ID]int
}
