package modal

import "github.com/san-kum/vibsim/internal/physics"

// Vec2 and Mat2 cover the fixed 2x2 linear algebra of the two-mass
// chain. Everything stays on plain arrays; no general matrix machinery
// is warranted at this size.
type Vec2 [2]float64

type Mat2 [2][2]float64

func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		m[0][0]*v[0] + m[0][1]*v[1],
		m[1][0]*v[0] + m[1][1]*v[1],
	}
}

func (m Mat2) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

func (v Vec2) Dot(o Vec2) float64 {
	return v[0]*o[0] + v[1]*o[1]
}

// Matrices assembles the mass and stiffness matrices of the chain:
//
//	M = diag(m1, m2)
//	K = [[k1+k2, -k2], [-k2, k2]]
func Matrices(p physics.Params) (m, k Mat2) {
	m = Mat2{
		{p.M1, 0},
		{0, p.M2},
	}
	k = Mat2{
		{p.K1 + p.K2, -p.K2},
		{-p.K2, p.K2},
	}
	return m, k
}
