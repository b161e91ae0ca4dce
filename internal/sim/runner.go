package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
)

// Runner drives a Simulation without a frame loop, recording frames and
// feeding metrics and observers.
type Runner struct {
	sim       *Simulation
	metrics   []Metric
	observers []Observer
}

func NewRunner(s *Simulation) *Runner {
	return &Runner{
		sim:       s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run performs cfg.Steps update/draw cycles. It stops early with the
// context's error, or with a *physics.SimulationError if the state diverges;
// in both cases the partial result is returned.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}
	surface := cfg.Surface
	if surface == nil {
		surface = render.NewBlank()
	}

	s := r.sim
	result := &Result{
		Times:     make([]float64, 0, cfg.Steps/every+1),
		Frames:    make([][]physics.Snapshot, 0, cfg.Steps/every+1),
		Metrics:   make(map[string]float64),
		Completed: make(map[physics.ID]int),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	first := s.Snapshot()
	result.Times = append(result.Times, s.Elapsed())
	result.Frames = append(result.Frames, first)
	initialEnergy := physics.TotalEnergy(first)

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		if cfg.Limiter != nil {
			if err := cfg.Limiter.Wait(ctx); err != nil {
				runErr = err
				break
			}
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if err := s.Step(); err != nil {
			s.logger.Error("simulation diverged", "err", err)
			runErr = err
			break
		}
		if fr, ok := surface.(render.Resetter); ok {
			fr.Reset()
		}
		s.Draw(surface)
		result.StepsTaken++

		for _, b := range s.Bodies() {
			if _, seen := result.Completed[b.ID()]; !seen && b.Trail().Completed() {
				result.Completed[b.ID()] = s.Steps()
			}
		}

		snap := s.Snapshot()
		t := s.Elapsed()
		for _, m := range r.metrics {
			m.Observe(snap, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(snap, t)
		}

		if result.StepsTaken%every == 0 {
			result.Times = append(result.Times, t)
			result.Frames = append(result.Frames, snap)
		}
	}

	finalEnergy := s.Energy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}
