package physics

import "github.com/san-kum/vibsim/internal/dynamo"

// State layout: [x1, v1, x2, v2] in absolute coordinates.
const (
	IdxX1 = 0
	IdxV1 = 1
	IdxX2 = 2
	IdxV2 = 3

	StateDim = 4
)

// TwoMassSpring is the undamped two-mass vertical spring chain as a
// first-order state-space system.
type TwoMassSpring struct {
	P Params
}

func NewTwoMassSpring(p Params) *TwoMassSpring {
	return &TwoMassSpring{P: p}
}

func (s *TwoMassSpring) StateDim() int { return StateDim }

// Derive returns [v1, a1, v2, a2] for an absolute state [x1, v1, x2, v2]:
//
//	m1 a1 = -k1 (x1 - L1) + k2 (x2 - x1 - L2) + m1 g
//	m2 a2 = -k2 (x2 - x1 - L2) + m2 g
func (s *TwoMassSpring) Derive(x dynamo.State, _ float64) dynamo.State {
	p := s.P
	x1, v1 := x[IdxX1], x[IdxV1]
	x2, v2 := x[IdxX2], x[IdxV2]

	stretch1 := x1 - p.L1
	stretch2 := x2 - x1 - p.L2

	a1 := (-p.K1*stretch1 + p.K2*stretch2 + p.M1*p.G) / p.M1
	a2 := (-p.K2*stretch2 + p.M2*p.G) / p.M2

	return dynamo.State{v1, a1, v2, a2}
}

// Energy is the total mechanical energy in equilibrium-relative form.
// Measuring spring stretch from the static rest point absorbs the
// gravitational terms, so this quantity is conserved along any free
// trajectory.
func (s *TwoMassSpring) Energy(x dynamo.State) float64 {
	eq := Equilibrium(s.P)
	y1 := x[IdxX1] - eq.X1
	y2 := x[IdxX2] - eq.X2
	v1 := x[IdxV1]
	v2 := x[IdxV2]

	kinetic := 0.5*s.P.M1*v1*v1 + 0.5*s.P.M2*v2*v2
	elastic := 0.5*s.P.K1*y1*y1 + 0.5*s.P.K2*(y2-y1)*(y2-y1)
	return kinetic + elastic
}

// AbsoluteState builds an absolute initial state from equilibrium-relative
// displacements and velocities.
func AbsoluteState(eq EquilibriumPoint, y1, v1, y2, v2 float64) dynamo.State {
	return dynamo.State{eq.X1 + y1, v1, eq.X2 + y2, v2}
}

// RelativeState converts an absolute state to equilibrium-relative form.
func RelativeState(eq EquilibriumPoint, x dynamo.State) dynamo.State {
	return dynamo.State{x[IdxX1] - eq.X1, x[IdxV1], x[IdxX2] - eq.X2, x[IdxV2]}
}

// GetParams implements dynamo.Configurable
func (s *TwoMassSpring) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": s.P.M1,
		"m2": s.P.M2,
		"k1": s.P.K1,
		"k2": s.P.K2,
	}
}

// SetParam implements dynamo.Configurable. Non-positive values are
// ignored to keep the system valid under live adjustment.
func (s *TwoMassSpring) SetParam(name string, value float64) {
	if value <= 0 {
		return
	}
	switch name {
	case "m1":
		s.P.M1 = value
	case "m2":
		s.P.M2 = value
	case "k1":
		s.P.K1 = value
	case "k2":
		s.P.K2 = value
	}
}
