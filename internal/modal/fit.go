package modal

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
)

// ErrSingularFit indicates linearly dependent mode shapes during
// initial-condition fitting. Positive-definite M precludes this for
// valid parameters.
var ErrSingularFit = errors.New("modal: mode-shape matrix is singular")

// Solution holds per-mode amplitudes and phases fitted to one set of
// initial conditions:
//
//	y(t) = A1 v1 cos(w1 t + phi1) + A2 v2 cos(w2 t + phi2)
type Solution struct {
	A   [2]float64
	Phi [2]float64
}

// Fit determines (A_i, phi_i) from equilibrium-relative initial
// displacements y0 and velocities v0. M-orthogonality decouples the
// modes exactly, so each pair comes from its own two-equation system:
// the M-weighted projections of y0 and v0 onto mode i fix q_i(0) and
// q_i'(0), and the amplitude/phase follow from
//
//	q_i(0) = A_i cos(phi_i),  q_i'(0) = -A_i w_i sin(phi_i)
//
// For v0 = 0 this reduces to A_i = q_i(0), phi_i = 0.
func Fit(dec Decomposition, y0, v0 Vec2) (Solution, error) {
	det := dec.shapeMatrix().Det()
	scale := math.Abs(dec.Modes[0][1]) + math.Abs(dec.Modes[1][1]) + 1
	if math.Abs(det) < 1e-12*scale {
		return Solution{}, fmt.Errorf("%w: det=%g", ErrSingularFit, det)
	}

	var sol Solution
	for i := 0; i < 2; i++ {
		v := dec.Modes[i]
		mv := dec.MassMatrix.MulVec(v)

		mu := v.Dot(mv) // modal mass
		if mu == 0 {
			return Solution{}, fmt.Errorf("%w: zero modal mass for mode %d", ErrSingularFit, i+1)
		}

		q0 := mv.Dot(y0) / mu
		qd0 := mv.Dot(v0) / mu
		w := dec.Omega[i]

		switch {
		case qd0 == 0:
			sol.A[i] = q0
			sol.Phi[i] = 0
		case q0 == 0:
			sol.Phi[i] = math.Pi / 2
			sol.A[i] = -qd0 / w
		default:
			// Keep phi in (-pi/2, pi/2) and let A carry the sign of q0,
			// so the zero-velocity case is the continuous limit.
			sol.Phi[i] = math.Atan(-qd0 / (w * q0))
			sol.A[i] = q0 / math.Cos(sol.Phi[i])
		}
	}

	return sol, nil
}

// Eval returns the closed-form equilibrium-relative displacements and
// velocities at time t.
func (sol Solution) Eval(dec Decomposition, t float64) (y, v Vec2) {
	for i := 0; i < 2; i++ {
		w := dec.Omega[i]
		phase := w*t + sol.Phi[i]
		c := sol.A[i] * math.Cos(phase)
		s := -sol.A[i] * w * math.Sin(phase)
		y[0] += c * dec.Modes[i][0]
		y[1] += c * dec.Modes[i][1]
		v[0] += s * dec.Modes[i][0]
		v[1] += s * dec.Modes[i][1]
	}
	return y, v
}

// Reconstruct samples the closed-form solution on the given time grid in
// absolute coordinates, mirroring the shape of an integrated trajectory.
func Reconstruct(dec Decomposition, sol Solution, eq physics.EquilibriumPoint, times []float64) *sim.Trajectory {
	traj := &sim.Trajectory{
		Times:  append([]float64(nil), times...),
		States: make([]dynamo.State, len(times)),
	}
	for i, t := range times {
		y, v := sol.Eval(dec, t)
		traj.States[i] = physics.AbsoluteState(eq, y[0], v[0], y[1], v[1])
	}
	return traj
}
