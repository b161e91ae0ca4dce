package sim

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/solarsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

func sun() physics.Descriptor {
	return physics.Descriptor{Name: "Sun", Kind: physics.Star, Mass: 1.9885e30, Radius: 696340}
}

func mercury() physics.Descriptor {
	return physics.Descriptor{
		Name:     "Mercury",
		Mass:     0.33e24,
		Radius:   2439.7,
		Position: r3.Vec{X: 5.79e10},
		Velocity: r3.Vec{Y: 47400},
	}
}

func newSim(t *testing.T, dt float64, bodies ...physics.Descriptor) *Simulation {
	t.Helper()
	s, err := New(dt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, d := range bodies {
		if _, err := s.AddBody(d); err != nil {
			t.Fatalf("AddBody(%q): %v", d.Name, err)
		}
	}
	return s
}

func TestNewInvalidTimestep(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := New(dt); !errors.Is(err, ErrInvalidTimestep) {
			t.Errorf("New(%v): expected ErrInvalidTimestep, got %v", dt, err)
		}
	}
}

func TestAddBodyAssignsIDs(t *testing.T) {
	s := newSim(t, Day)
	a, _ := s.AddBody(sun())
	b, _ := s.AddBody(mercury())

	if a.ID() == b.ID() {
		t.Errorf("bodies share id %d", a.ID())
	}
	if s.Body(b.ID()) != b {
		t.Error("Body lookup by id failed")
	}

	// a second simulation starts its own sequence
	other := newSim(t, Day)
	c, _ := other.AddBody(sun())
	if c.ID() != a.ID() {
		t.Errorf("expected independent id sequence, got %d and %d", c.ID(), a.ID())
	}
}

func TestAddBodyRejectsCoincident(t *testing.T) {
	s := newSim(t, Day, sun())

	d := mercury()
	d.Position = r3.Vec{Z: 1e9} // same x-y as the sun
	if _, err := s.AddBody(d); !errors.Is(err, physics.ErrCoincident) {
		t.Errorf("expected ErrCoincident, got %v", err)
	}
	if len(s.Bodies()) != 1 {
		t.Errorf("rejected body was added")
	}
}

func TestAddBodyRejectsInvalid(t *testing.T) {
	s := newSim(t, Day)
	d := mercury()
	d.Mass = 0
	if _, err := s.AddBody(d); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody, got %v", err)
	}
}

func TestLoneStarStaysPut(t *testing.T) {
	s := newSim(t, Day, sun())
	star := s.Bodies()[0]

	for i := 0; i < 1000; i++ {
		s.Update()
	}

	if star.Pos != (r3.Vec{}) || star.Vel != (r3.Vec{}) {
		t.Errorf("star moved: pos %v vel %v", star.Pos, star.Vel)
	}
	if s.Steps() != 1000 || s.Elapsed() != 1000*Day {
		t.Errorf("steps %d elapsed %v", s.Steps(), s.Elapsed())
	}
}

func TestStepMatchesEulerSequence(t *testing.T) {
	s := newSim(t, Day, sun(), mercury())
	star, planet := s.Bodies()[0], s.Bodies()[1]

	f := physics.Attraction(planet, star)
	vel := r3.Add(planet.Vel, r3.Scale(Day/planet.Mass(), f))
	pos := r3.Add(planet.Pos, r3.Scale(Day, vel))

	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if r3.Norm(r3.Sub(planet.Vel, vel)) > 1e-9 {
		t.Errorf("velocity %v, want %v", planet.Vel, vel)
	}
	if r3.Norm(r3.Sub(planet.Pos, pos)) > 1e-3 {
		t.Errorf("position %v, want %v", planet.Pos, pos)
	}
}

func TestStepIsSimultaneous(t *testing.T) {
	a := physics.Descriptor{Name: "a", Mass: 1e24, Radius: 1000, Position: r3.Vec{X: -1e9}}
	b := physics.Descriptor{Name: "b", Mass: 1e24, Radius: 1000, Position: r3.Vec{X: 1e9}}

	forward := newSim(t, Hour, a, b)
	reverse := newSim(t, Hour, b, a)

	forward.Update()
	reverse.Update()

	// add order must not change the outcome
	fa, fb := forward.Bodies()[0], forward.Bodies()[1]
	rb, ra := reverse.Bodies()[0], reverse.Bodies()[1]
	if fa.Pos != ra.Pos || fb.Pos != rb.Pos {
		t.Errorf("order-dependent update: %v/%v vs %v/%v", fa.Pos, fb.Pos, ra.Pos, rb.Pos)
	}

	// symmetric pair moves symmetrically
	if math.Abs(fa.Pos.X+fb.Pos.X) > 1e-3 {
		t.Errorf("asymmetric update: %v and %v", fa.Pos, fb.Pos)
	}
}

func TestUpdatePanicsOnInvalidState(t *testing.T) {
	s := newSim(t, Day, sun(), mercury())
	s.Bodies()[1].Vel = r3.Vec{X: math.NaN()}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, physics.ErrInvalidState) {
			t.Errorf("expected panic with ErrInvalidState, got %v", r)
		}
	}()
	s.Update()
}

func TestRunnerRecordsFrames(t *testing.T) {
	s := newSim(t, Day, sun(), mercury())
	r := NewRunner(s)

	result, err := r.Run(context.Background(), RunConfig{Steps: 150, RecordEvery: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 150 {
		t.Errorf("expected 150 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 16 || len(result.Times) != 16 {
		t.Errorf("expected 16 frames, got %d frames %d times", len(result.Frames), len(result.Times))
	}
	if result.Times[1] != 10*Day {
		t.Errorf("second frame at %v, want %v", result.Times[1], 10*Day)
	}

	planet := s.Bodies()[1]
	step, ok := result.Completed[planet.ID()]
	if !ok {
		t.Fatal("mercury trail did not complete within 150 days")
	}
	if step < 80 || step > 120 {
		t.Errorf("mercury trail completed at step %d, want about one mercury year", step)
	}
}

func TestRunnerCanceled(t *testing.T) {
	s := newSim(t, Day, sun(), mercury())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(s).Run(ctx, RunConfig{Steps: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps after cancel, got %d", result.StepsTaken)
	}
}

func TestRunnerInvalidSteps(t *testing.T) {
	s := newSim(t, Day, sun())
	if _, err := NewRunner(s).Run(context.Background(), RunConfig{Steps: 0}); err == nil {
		t.Error("expected error for zero steps")
	}
}

type frameSurface struct {
	circles, resets int
}

func (f *frameSurface) Size() (float64, float64)             { return 800, 600 }
func (f *frameSurface) Circle(x, y, r float64, _ color.RGBA) { f.circles++ }
func (f *frameSurface) Reset()                               { f.circles = 0; f.resets++ }

func TestRunnerResetsSurface(t *testing.T) {
	s := newSim(t, Day, sun(), mercury())
	surface := &frameSurface{}

	if _, err := NewRunner(s).Run(context.Background(), RunConfig{Steps: 5, Surface: surface}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if surface.resets != 5 {
		t.Errorf("expected a reset per step, got %d", surface.resets)
	}
	// last frame: five mercury trail points, mercury and the unsampled sun
	if surface.circles != 7 {
		t.Errorf("last frame drew %d circles, want 7", surface.circles)
	}
}

type countingMetric struct{ n int }

func (c *countingMetric) Name() string                            { return "count" }
func (c *countingMetric) Observe(b []physics.Snapshot, t float64) { c.n++ }
func (c *countingMetric) Value() float64                          { return float64(c.n) }
func (c *countingMetric) Reset()                                  { c.n = 0 }
func (c *countingMetric) OnStep(b []physics.Snapshot, t float64)  { c.n++ }

func TestRunnerMetrics(t *testing.T) {
	s := newSim(t, Hour, sun(), mercury())
	r := NewRunner(s)
	m := &countingMetric{}
	r.AddMetric(m)
	r.AddObserver(m)

	result, err := r.Run(context.Background(), RunConfig{Steps: 24})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Metrics["count"] != 48 {
		t.Errorf("expected 48 observations (metric + observer), got %v", result.Metrics["count"])
	}
	if result.EnergyDrift > 1e-3 {
		t.Errorf("energy drift %v over one day at hourly steps", result.EnergyDrift)
	}
}

func TestNewIntegrator(t *testing.T) {
	for _, name := range IntegratorNames() {
		if _, err := NewIntegrator(name); err != nil {
			t.Errorf("NewIntegrator(%q): %v", name, err)
		}
	}
	if _, err := NewIntegrator("rk4"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}
