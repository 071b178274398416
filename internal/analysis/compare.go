package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/vibsim/internal/sim"
)

var ErrMismatchedGrids = errors.New("analysis: trajectories sampled on different grids")

// Deviation summarizes the pointwise disagreement between two
// trajectories of the same system, e.g. numerical versus closed-form.
type Deviation struct {
	Max     float64 // worst absolute componentwise deviation
	MaxTime float64 // sample time where it occurred
	RMS     float64
}

// Compare measures how far two trajectories on the same time grid are
// apart across all state components.
func Compare(a, b *sim.Trajectory) (Deviation, error) {
	if a.Len() != b.Len() {
		return Deviation{}, ErrMismatchedGrids
	}

	var d Deviation
	sumSq := 0.0
	count := 0

	for i := range a.States {
		if a.Times[i] != b.Times[i] {
			return Deviation{}, ErrMismatchedGrids
		}
		diff := a.States[i].Sub(b.States[i])
		for _, v := range diff {
			av := math.Abs(v)
			if av > d.Max {
				d.Max = av
				d.MaxTime = a.Times[i]
			}
			sumSq += v * v
			count++
		}
	}

	if count > 0 {
		d.RMS = math.Sqrt(sumSq / float64(count))
	}
	return d, nil
}
