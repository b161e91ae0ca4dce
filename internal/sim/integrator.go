package sim

import (
	"fmt"
	"sort"

	"github.com/san-kum/solarsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// Integrator advances one body by dt under a constant force.
type Integrator interface {
	Step(b *physics.Body, force r3.Vec, dt float64)
}

// Euler updates velocity from the force, then position from the new
// velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(b *physics.Body, force r3.Vec, dt float64) {
	a := r3.Scale(1/b.Mass(), force)
	b.Vel = r3.Add(b.Vel, r3.Scale(dt, a))
	b.Pos = r3.Add(b.Pos, r3.Scale(dt, b.Vel))
}

// ForwardEuler advances position with the velocity from the start of the
// step.
type ForwardEuler struct{}

func NewForwardEuler() *ForwardEuler {
	return &ForwardEuler{}
}

func (e *ForwardEuler) Step(b *physics.Body, force r3.Vec, dt float64) {
	a := r3.Scale(1/b.Mass(), force)
	b.Pos = r3.Add(b.Pos, r3.Scale(dt, b.Vel))
	b.Vel = r3.Add(b.Vel, r3.Scale(dt, a))
}

var integrators = map[string]func() Integrator{
	"euler":   func() Integrator { return NewEuler() },
	"forward": func() Integrator { return NewForwardEuler() },
}

// NewIntegrator returns the integrator registered under name.
func NewIntegrator(name string) (Integrator, error) {
	ctor, ok := integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownIntegrator, name, IntegratorNames())
	}
	return ctor(), nil
}

func IntegratorNames() []string {
	names := make([]string, 0, len(integrators))
	for name := range integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
