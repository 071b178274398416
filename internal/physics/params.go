package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidParams indicates a physically meaningless parameter set.
var ErrInvalidParams = errors.New("physics: invalid parameters")

const DefaultGravity = 9.81

// Params holds the physical constants of the vertical two-mass chain:
// spring 1 hangs from a fixed support, carries mass 1, which carries
// spring 2 and mass 2. Positions are measured from the support,
// positive downward.
type Params struct {
	M1 float64 // mass 1 (kg)
	M2 float64 // mass 2 (kg)
	K1 float64 // spring 1 stiffness (N/m)
	K2 float64 // spring 2 stiffness (N/m)
	L1 float64 // spring 1 natural length (m)
	L2 float64 // spring 2 natural length (m)
	G  float64 // gravitational acceleration (m/s^2)
}

// NewParams validates the constants and returns a Params value. A zero
// gravity is replaced by DefaultGravity; negative gravity is allowed
// (the chain then hangs upward, still a valid linear system).
func NewParams(m1, m2, k1, k2, l1, l2, g float64) (Params, error) {
	p := Params{M1: m1, M2: m2, K1: k1, K2: k2, L1: l1, L2: l2, G: g}
	if p.G == 0 {
		p.G = DefaultGravity
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) Validate() error {
	if p.M1 <= 0 || p.M2 <= 0 {
		return fmt.Errorf("%w: masses must be positive (m1=%g, m2=%g)", ErrInvalidParams, p.M1, p.M2)
	}
	if p.K1 <= 0 || p.K2 <= 0 {
		return fmt.Errorf("%w: stiffnesses must be positive (k1=%g, k2=%g)", ErrInvalidParams, p.K1, p.K2)
	}
	if p.L1 < 0 || p.L2 < 0 {
		return fmt.Errorf("%w: natural lengths must be non-negative (l1=%g, l2=%g)", ErrInvalidParams, p.L1, p.L2)
	}
	return nil
}

// DefaultParams are the reference constants used throughout the docs
// and presets.
func DefaultParams() Params {
	return Params{
		M1: 1.0,
		M2: 2.0,
		K1: 100.0,
		K2: 50.0,
		L1: 0.1,
		L2: 0.15,
		G:  DefaultGravity,
	}
}
