package sim

import (
	"errors"

	"github.com/san-kum/vibsim/internal/dynamo"
)

// ErrInvalidConfig indicates a malformed simulation request (bad time
// window, too few sample points, non-positive tolerances).
var ErrInvalidConfig = errors.New("sim: invalid config")

// Config describes one simulation window. The solution is sampled at
// NumPoints equally spaced times in [T0, TFinal]; the stepper is free to
// take as many internal steps as it needs between samples.
type Config struct {
	T0        float64
	TFinal    float64
	NumPoints int

	// Dt is the internal step for fixed-step integrators.
	Dt float64

	// Tol is the local error tolerance for adaptive integrators.
	Tol float64

	// MinDt aborts the run when the adaptive controller needs a smaller
	// step than this to meet Tol.
	MinDt float64

	// MaxSteps bounds the total number of internal step attempts.
	MaxSteps int

	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		T0:            0,
		TFinal:        10.0,
		NumPoints:     1000,
		Dt:            0.01,
		Tol:           1e-9,
		MinDt:         1e-12,
		MaxSteps:      1_000_000,
		ValidateState: true,
	}
}

// Trajectory is the sampled solution of one run. Times and States are
// index-aligned; the first sample is the initial state verbatim.
type Trajectory struct {
	Times  []float64
	States []dynamo.State

	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Column extracts one state component across all samples.
func (tr *Trajectory) Column(idx int) []float64 {
	col := make([]float64, len(tr.States))
	for i, s := range tr.States {
		if idx < len(s) {
			col[i] = s[idx]
		}
	}
	return col
}
