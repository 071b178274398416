package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/vibsim/internal/dynamo"
)

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over cfg's window and samples the solution at
// NumPoints equally spaced times. On integration failure the trajectory
// built so far is returned alongside a *dynamo.IntegrationError carrying
// the last reached time and state.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Trajectory, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d",
			dynamo.ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}
	if cfg.ValidateState && !x0.IsValid() {
		return nil, dynamo.ErrInvalidState
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	traj := &Trajectory{
		Times:   make([]float64, 0, cfg.NumPoints),
		States:  make([]dynamo.State, 0, cfg.NumPoints),
		Metrics: make(map[string]float64),
	}

	x := x0.Clone()
	t := cfg.T0
	s.sample(traj, x, t)

	initialEnergy := s.computeEnergy(x)

	adaptive, isAdaptive := s.integrator.(dynamo.AdaptiveIntegrator)

	span := cfg.TFinal - cfg.T0
	dt := cfg.Dt
	if isAdaptive {
		// Seed with a fraction of the sample interval; the controller
		// takes over from there.
		dt = span / float64(cfg.NumPoints-1) / 4
	}

	steps := 0
	for i := 1; i < cfg.NumPoints; i++ {
		ts := cfg.T0 + span*float64(i)/float64(cfg.NumPoints-1)

		for t < ts {
			select {
			case <-ctx.Done():
				return traj, ctx.Err()
			default:
			}

			if steps >= cfg.MaxSteps {
				return traj, s.fail(steps, t, x, dynamo.ErrStepBudget)
			}

			h := math.Min(dt, ts-t)

			if isAdaptive {
				next, errRatio, dtNext := adaptive.StepAdaptive(s.dyn, x, t, h, cfg.Tol)
				steps++
				if errRatio > 1 {
					if dtNext < cfg.MinDt {
						return traj, s.fail(steps, t, x, dynamo.ErrStepTooSmall)
					}
					dt = dtNext
					continue
				}
				x = next
				t += h
				dt = dtNext
			} else {
				x = s.integrator.Step(s.dyn, x, t, h)
				t += h
				steps++
			}

			if cfg.ValidateState && !x.IsValid() {
				return traj, s.fail(steps, t, x, dynamo.ErrInvalidState)
			}
		}

		// Land exactly on the grid; h-clamping leaves only roundoff.
		t = ts
		s.sample(traj, x, t)
	}

	traj.StepsTaken = steps

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		traj.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

func (s *Simulator) sample(traj *Trajectory, x dynamo.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnSample(x, t)
	}
	traj.Times = append(traj.Times, t)
	traj.States = append(traj.States, x.Clone())
}

func (s *Simulator) fail(step int, t float64, x dynamo.State, cause error) error {
	return &dynamo.IntegrationError{
		Step:    step,
		Time:    t,
		State:   x.Clone(),
		Wrapped: cause,
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.TFinal <= cfg.T0 {
		return fmt.Errorf("%w: t_final %g must exceed t0 %g", ErrInvalidConfig, cfg.TFinal, cfg.T0)
	}
	if cfg.NumPoints < 2 {
		return fmt.Errorf("%w: need at least 2 sample points, got %d", ErrInvalidConfig, cfg.NumPoints)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("%w: step budget must be positive, got %d", ErrInvalidConfig, cfg.MaxSteps)
	}
	if _, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		if cfg.Tol <= 0 {
			return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidConfig)
		}
		if cfg.MinDt <= 0 {
			return fmt.Errorf("%w: min dt must be positive for adaptive stepping", ErrInvalidConfig)
		}
	} else if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	return nil
}

func (s *Simulator) computeEnergy(x dynamo.State) float64 {
	if h, ok := s.dyn.(dynamo.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
