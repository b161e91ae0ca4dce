package physics

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/solarsim/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ID identifies a body for the lifetime of a simulation.
type ID uint64

// Kind separates fixed gravitational sources from bodies that move.
type Kind int

const (
	Planet Kind = iota
	Star
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the names produced by [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "star":
		return Star, nil
	case "planet", "":
		return Planet, nil
	default:
		return Planet, fmt.Errorf("unknown body kind %q", s)
	}
}

// Descriptor is the initial description of a body.
type Descriptor struct {
	Name     string
	Kind     Kind
	Mass     float64 // kg
	Radius   float64 // km
	Position r3.Vec  // m
	Velocity r3.Vec  // m/s
	Color    color.RGBA
}

// Validate reports whether the descriptor can become a body.
func (d Descriptor) Validate() error {
	if !(d.Mass > 0) || math.IsInf(d.Mass, 0) {
		return fmt.Errorf("%w: %q mass must be positive, got %g", ErrInvalidBody, d.Name, d.Mass)
	}
	if !(d.Radius > 0) || math.IsInf(d.Radius, 0) {
		return fmt.Errorf("%w: %q radius must be positive, got %g", ErrInvalidBody, d.Name, d.Radius)
	}
	if !finite(d.Position) || !finite(d.Velocity) {
		return fmt.Errorf("%w: %q has non-finite position or velocity", ErrInvalidBody, d.Name)
	}
	return nil
}

// Body is a point mass. Mass, radius, kind and id are fixed at creation;
// Pos and Vel change every update.
type Body struct {
	id     ID
	kind   Kind
	name   string
	mass   float64
	radius float64
	color  color.RGBA
	trail  *Trail

	Pos r3.Vec
	Vel r3.Vec
}

// NewBody builds a body with the given id. The caller owns id assignment.
func NewBody(id ID, d Descriptor) (*Body, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Body{
		id:     id,
		kind:   d.Kind,
		name:   d.Name,
		mass:   d.Mass,
		radius: d.Radius,
		color:  d.Color,
		trail:  NewTrail(),
		Pos:    d.Position,
		Vel:    d.Velocity,
	}, nil
}

func (b *Body) ID() ID            { return b.id }
func (b *Body) Kind() Kind        { return b.kind }
func (b *Body) Name() string      { return b.name }
func (b *Body) Mass() float64     { return b.mass }
func (b *Body) Radius() float64   { return b.radius }
func (b *Body) Color() color.RGBA { return b.color }
func (b *Body) Trail() *Trail     { return b.trail }
func (b *Body) IsStar() bool      { return b.kind == Star }
func (b *Body) Distance() float64 { return math.Hypot(b.Pos.X, b.Pos.Y) }
func (b *Body) Speed() float64    { return r3.Norm(b.Vel) }
func (b *Body) IsValid() bool     { return finite(b.Pos) && finite(b.Vel) }

// Snapshot is an immutable copy of a body's dynamic state.
type Snapshot struct {
	ID   ID
	Kind Kind
	Name string
	Mass float64
	Pos  r3.Vec
	Vel  r3.Vec
}

// Snapshot copies the body's current state.
func (b *Body) Snapshot() Snapshot {
	return Snapshot{ID: b.id, Kind: b.kind, Name: b.name, Mass: b.mass, Pos: b.Pos, Vel: b.Vel}
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Draw projects the body onto r, feeds its trail and draws the visible trail
// samples followed by the body itself. Stars never move, so their trail is
// not sampled.
func (b *Body) Draw(r render.Renderer, p render.Projection) {
	w, h := r.Size()
	screen := p.Project(b.Pos, w, h)
	if b.kind != Star {
		b.trail.Update(b.Pos.X, b.Pos.Y, screen, p.Project(r3.Vec{}, w, h))
	}
	b.show(r, p, screen)
}

// Show draws the body and its visible trail without recording a sample.
func (b *Body) Show(r render.Renderer, p render.Projection) {
	w, h := r.Size()
	b.show(r, p, p.Project(b.Pos, w, h))
}

func (b *Body) show(r render.Renderer, p render.Projection, screen r2.Vec) {
	for _, s := range b.trail.Visible() {
		r.Circle(s.X, s.Y, p.TrailRadius, b.color)
	}
	r.Circle(screen.X, screen.Y, p.Radius(b.radius), b.color)
}
