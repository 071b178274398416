package modal

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/vibsim/internal/physics"
)

// ErrDegenerate indicates the generalized eigenvalue problem produced a
// non-positive or complex squared frequency. Valid parameters cannot
// reach this; it flags a numerical-conditioning edge case.
var ErrDegenerate = errors.New("modal: degenerate system")

// Decomposition holds the two natural modes of the chain, ordered by
// ascending frequency. Each mode shape is normalized so its first
// component equals 1, fixing the scale ambiguity of eigenvectors.
type Decomposition struct {
	Omega [2]float64 // natural angular frequencies (rad/s), Omega[0] <= Omega[1]
	Modes [2]Vec2    // mode shapes, Modes[i][0] == 1

	// MassMatrix is retained for the orthogonal projection in Fit.
	MassMatrix Mat2
}

// Decompose solves (K - w^2 M) v = 0 in closed form. Expanding the 2x2
// determinant gives a quadratic in lambda = w^2:
//
//	m1 m2 lambda^2 - (m1 k2 + m2 (k1+k2)) lambda + k1 k2 = 0
func Decompose(p physics.Params) (Decomposition, error) {
	if err := p.Validate(); err != nil {
		return Decomposition{}, err
	}

	m, _ := Matrices(p)

	a := p.M1 * p.M2
	b := -(p.M1*p.K2 + p.M2*(p.K1+p.K2))
	c := p.K1 * p.K2

	disc := b*b - 4*a*c
	if disc < 0 {
		return Decomposition{}, fmt.Errorf("%w: complex squared frequency (disc=%g)", ErrDegenerate, disc)
	}

	// b < 0 for valid parameters; subtracting the root from -b avoids
	// cancellation in the smaller eigenvalue.
	q := 0.5 * (math.Sqrt(disc) - b)
	lambda1 := c / q
	lambda2 := q / a

	if lambda1 <= 0 || lambda2 <= 0 {
		return Decomposition{}, fmt.Errorf("%w: non-positive squared frequency (%g, %g)", ErrDegenerate, lambda1, lambda2)
	}

	dec := Decomposition{
		Omega:      [2]float64{math.Sqrt(lambda1), math.Sqrt(lambda2)},
		MassMatrix: m,
	}
	for i, lambda := range [2]float64{lambda1, lambda2} {
		// First row of (K - lambda M) v = 0 with v[0] = 1.
		dec.Modes[i] = Vec2{1, (p.K1 + p.K2 - lambda*p.M1) / p.K2}
	}

	return dec, nil
}

// shapeMatrix has the mode shapes as columns; it maps modal coordinates
// to physical displacements.
func (d Decomposition) shapeMatrix() Mat2 {
	return Mat2{
		{d.Modes[0][0], d.Modes[1][0]},
		{d.Modes[0][1], d.Modes[1][1]},
	}
}
