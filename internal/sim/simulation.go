package sim

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Day  = 86400.0
	Hour = 3600.0
)

// Simulation owns a set of bodies and advances them with a fixed timestep.
// It is not safe for concurrent use.
type Simulation struct {
	bodies     []*physics.Body
	forces     []r3.Vec
	nextID     physics.ID
	timestep   float64
	elapsed    float64
	steps      int
	integrator Integrator
	projection render.Projection
	logger     *log.Logger
}

type Option func(*Simulation)

func WithIntegrator(i Integrator) Option {
	return func(s *Simulation) { s.integrator = i }
}

func WithProjection(p render.Projection) Option {
	return func(s *Simulation) { s.projection = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// New creates an empty simulation advancing timestep seconds per update.
func New(timestep float64, opts ...Option) (*Simulation, error) {
	if !(timestep > 0) || math.IsInf(timestep, 0) {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidTimestep, timestep)
	}
	s := &Simulation{
		timestep:   timestep,
		nextID:     1,
		integrator: NewEuler(),
		projection: render.DefaultProjection(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddBody creates a body from d with the next free id. It rejects a body
// whose planar position matches one already added.
func (s *Simulation) AddBody(d physics.Descriptor) (*physics.Body, error) {
	for _, other := range s.bodies {
		if other.Pos.X == d.Position.X && other.Pos.Y == d.Position.Y {
			return nil, fmt.Errorf("%w: %q and %q at (%g, %g)",
				physics.ErrCoincident, d.Name, other.Name(), d.Position.X, d.Position.Y)
		}
	}

	b, err := physics.NewBody(s.nextID, d)
	if err != nil {
		return nil, err
	}
	s.nextID++
	s.bodies = append(s.bodies, b)
	s.forces = append(s.forces, r3.Vec{})

	s.logger.Debug("body added", "id", b.ID(), "name", b.Name(), "kind", b.Kind(), "mass", b.Mass())
	return b, nil
}

func (s *Simulation) Bodies() []*physics.Body       { return s.bodies }
func (s *Simulation) Timestep() float64             { return s.timestep }
func (s *Simulation) Elapsed() float64              { return s.elapsed }
func (s *Simulation) Steps() int                    { return s.steps }
func (s *Simulation) Projection() render.Projection { return s.projection }

// Body returns the body with the given id, or nil.
func (s *Simulation) Body(id physics.ID) *physics.Body {
	for _, b := range s.bodies {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// Step advances every non-star body by one timestep. Forces for the whole
// step are computed before any body moves. A non-finite result is returned
// as a *physics.SimulationError wrapping physics.ErrInvalidState.
func (s *Simulation) Step() error {
	for i, b := range s.bodies {
		if b.IsStar() {
			s.forces[i] = r3.Vec{}
			continue
		}
		s.forces[i] = physics.NetForce(b, s.bodies)
	}

	for i, b := range s.bodies {
		if b.IsStar() {
			continue
		}
		s.integrator.Step(b, s.forces[i], s.timestep)
	}

	s.elapsed += s.timestep
	s.steps++

	for _, b := range s.bodies {
		if !b.IsValid() {
			return &physics.SimulationError{
				Step:    s.steps,
				Time:    s.elapsed,
				BodyID:  b.ID(),
				Wrapped: physics.ErrInvalidState,
			}
		}
	}
	return nil
}

// Update is Step for frame drivers: an invalid state is a defect and panics.
func (s *Simulation) Update() {
	if err := s.Step(); err != nil {
		s.logger.Error("simulation diverged", "err", err)
		panic(err)
	}
}

// Draw projects every body onto r, extending its trail.
func (s *Simulation) Draw(r render.Renderer) {
	for _, b := range s.bodies {
		wasComplete := b.Trail().Completed()
		b.Draw(r, s.projection)
		if !wasComplete && b.Trail().Completed() {
			s.logger.Info("orbit complete",
				"body", b.Name(), "step", s.steps, "days", s.elapsed/Day, "samples", b.Trail().Len())
		}
	}
}

// Show draws every body and its trail as it stands, without extending trails.
func (s *Simulation) Show(r render.Renderer) {
	for _, b := range s.bodies {
		b.Show(r, s.projection)
	}
}

// Snapshot copies the state of every body in add order.
func (s *Simulation) Snapshot() []physics.Snapshot {
	out := make([]physics.Snapshot, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = b.Snapshot()
	}
	return out
}

// Energy returns the total mechanical energy of the current state.
func (s *Simulation) Energy() float64 {
	return physics.TotalEnergy(s.Snapshot())
}
