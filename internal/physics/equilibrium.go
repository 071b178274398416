package physics

// EquilibriumPoint holds the static rest positions of both masses,
// measured from the support, positive downward.
type EquilibriumPoint struct {
	X1 float64
	X2 float64
}

// Equilibrium solves the static balance in closed form. Spring 1 carries
// the whole chain, spring 2 only mass 2:
//
//	x1eq = L1 + (m1+m2) g / k1
//	x2eq = x1eq + L2 + m2 g / k2
func Equilibrium(p Params) EquilibriumPoint {
	x1 := p.L1 + (p.M1+p.M2)*p.G/p.K1
	x2 := x1 + p.L2 + p.M2*p.G/p.K2
	return EquilibriumPoint{X1: x1, X2: x2}
}
