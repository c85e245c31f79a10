package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []Metric
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Integrate is a convenience wrapper around a one-off Simulator run.
func Integrate(ctx context.Context, dyn dynamo.System, integ dynamo.Integrator, x0 dynamo.State, grid Grid, cfg dynamo.Config) (*Trajectory, error) {
	return New(dyn, integ).Run(ctx, x0, grid, cfg)
}

// Run integrates from x0 at grid[0] and records the state at every grid
// point. The first sample is x0 itself. Adaptive integrators take as many
// internal steps as their error control needs and land exactly on each grid
// point; fixed-step integrators split every interval into cfg.Substeps.
//
// Non-finite states are not an error: once the state diverges the remaining
// samples repeat it and Trajectory.Diverged reports true.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, grid Grid, cfg dynamo.Config) (*Trajectory, error) {
	if err := s.validate(x0, grid, cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	tr := &Trajectory{
		Times:   make([]float64, len(grid)),
		States:  make([]dynamo.State, 0, len(grid)),
		Metrics: make(map[string]float64),
	}
	copy(tr.Times, grid)

	x := x0.Clone()
	tr.States = append(tr.States, x.Clone())
	s.observe(x, grid[0])

	adaptive, isAdaptive := s.integrator.(dynamo.AdaptiveIntegrator)
	dt := 0.01
	if len(grid) > 1 {
		dt = grid[1] - grid[0]
	}

	for i := 1; i < len(grid); i++ {
		select {
		case <-ctx.Done():
			return tr, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		t0, t1 := grid[i-1], grid[i]
		if x.IsValid() {
			var err error
			if isAdaptive {
				x, dt, err = s.advanceAdaptive(adaptive, x, t0, t1, dt, cfg, tr)
			} else {
				x = s.advanceFixed(x, t0, t1, cfg, tr)
			}
			if err != nil {
				return tr, err
			}
		}

		tr.States = append(tr.States, x.Clone())
		s.observe(x, t1)
	}

	for _, m := range s.metrics {
		tr.Metrics[m.Name()] = m.Value()
	}

	return tr, nil
}

func (s *Simulator) validate(x0 dynamo.State, grid Grid, cfg dynamo.Config) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("%w: state has %d components, system expects %d",
			dynamo.ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}
	if _, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		if cfg.Tolerance <= 0 {
			return fmt.Errorf("tolerance must be positive for adaptive stepping, got %g", cfg.Tolerance)
		}
		if cfg.MaxSteps <= 0 {
			return fmt.Errorf("max steps must be positive, got %d", cfg.MaxSteps)
		}
	} else if cfg.Substeps <= 0 {
		return fmt.Errorf("substeps must be positive, got %d", cfg.Substeps)
	}
	return nil
}

func (s *Simulator) observe(x dynamo.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
}

// advanceAdaptive steps from t0 to exactly t1. It returns the state at t1
// and the step size to start the next interval with.
func (s *Simulator) advanceAdaptive(integ dynamo.AdaptiveIntegrator, x dynamo.State, t0, t1, dt float64, cfg dynamo.Config, tr *Trajectory) (dynamo.State, float64, error) {
	t := t0
	eps := 1e-12 * math.Max(1, math.Abs(t1))

	for steps := 0; t1-t > eps; {
		if steps >= cfg.MaxSteps {
			return x, dt, &dynamo.SimulationError{Step: tr.StepsTaken, Time: t, State: x.Clone(), Wrapped: dynamo.ErrTooManySteps}
		}

		h := dt
		clipped := false
		if h >= t1-t {
			h = t1 - t
			clipped = true
		}

		newX, next, err := integ.StepAdaptive(s.dyn, x, nil, t, h, cfg.Tolerance)
		steps++
		if errors.Is(err, dynamo.ErrStepRejected) {
			tr.Rejected++
			if next < cfg.MinDt {
				return x, dt, &dynamo.SimulationError{Step: tr.StepsTaken, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall}
			}
			dt = next
			continue
		}
		if err != nil {
			return x, dt, &dynamo.SimulationError{Step: tr.StepsTaken, Time: t, State: x.Clone(), Wrapped: err}
		}

		x = newX
		tr.StepsTaken++
		if clipped {
			t = t1
			// a clipped step says little about the natural step size
			dt = math.Max(dt, next)
		} else {
			t += h
			dt = next
		}
		if !x.IsValid() {
			break
		}
	}

	return x, dt, nil
}

func (s *Simulator) advanceFixed(x dynamo.State, t0, t1 float64, cfg dynamo.Config, tr *Trajectory) dynamo.State {
	h := (t1 - t0) / float64(cfg.Substeps)
	for k := 0; k < cfg.Substeps; k++ {
		x = s.integrator.Step(s.dyn, x, nil, t0+float64(k)*h, h)
		tr.StepsTaken++
		if !x.IsValid() {
			break
		}
	}
	return x
}
