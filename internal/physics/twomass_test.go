package physics

import (
	"math"
	"testing"

	"github.com/san-kum/vibsim/internal/dynamo"
)

func TestEquilibrium_Formula(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"default", DefaultParams()},
		{"light", Params{M1: 0.020, M2: 0.030, K1: 10.32, K2: 10.32, L1: 0, L2: 0, G: 9.81}},
		{"asymmetric", Params{M1: 3.5, M2: 0.4, K1: 12.0, K2: 200.0, L1: 1.0, L2: 0.5, G: 9.81}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := Equilibrium(tt.p)
			p := tt.p

			wantX1 := p.L1 + (p.M1+p.M2)*p.G/p.K1
			wantX2 := wantX1 + p.L2 + p.M2*p.G/p.K2

			if eq.X1 != wantX1 {
				t.Errorf("x1eq: got %v, want %v", eq.X1, wantX1)
			}
			if eq.X2 != wantX2 {
				t.Errorf("x2eq: got %v, want %v", eq.X2, wantX2)
			}
		})
	}
}

func TestEquilibrium_Idempotent(t *testing.T) {
	p := DefaultParams()
	a := Equilibrium(p)
	b := Equilibrium(p)
	if a != b {
		t.Errorf("equilibrium not bitwise stable: %v vs %v", a, b)
	}
}

func TestDerive_RestAtEquilibrium(t *testing.T) {
	p := DefaultParams()
	s := NewTwoMassSpring(p)
	eq := Equilibrium(p)

	dx := s.Derive(AbsoluteState(eq, 0, 0, 0, 0), 0)

	for i, v := range dx {
		if math.Abs(v) > 1e-12 {
			t.Errorf("derivative[%d] at equilibrium should be 0, got %g", i, v)
		}
	}
}

func TestDerive_RestoringForce(t *testing.T) {
	p := DefaultParams()
	s := NewTwoMassSpring(p)
	eq := Equilibrium(p)

	// Mass 1 pulled down, mass 2 held at its rest offset from mass 1.
	y := 0.05
	x := AbsoluteState(eq, y, 0, y, 0)
	dx := s.Derive(x, 0)

	if dx[IdxX1] != 0 || dx[IdxX2] != 0 {
		t.Errorf("position derivatives should equal zero velocities, got %v", dx)
	}

	// Spring 2 keeps its rest stretch, so only spring 1 acts: a1 = -k1 y / m1.
	wantA1 := -p.K1 * y / p.M1
	if math.Abs(dx[IdxV1]-wantA1) > 1e-9 {
		t.Errorf("a1: got %g, want %g", dx[IdxV1], wantA1)
	}
	if math.Abs(dx[IdxV2]) > 1e-9 {
		t.Errorf("a2 should vanish when spring 2 is at rest stretch, got %g", dx[IdxV2])
	}
}

func TestDerive_Autonomous(t *testing.T) {
	s := NewTwoMassSpring(DefaultParams())
	x := dynamo.State{0.3, -0.1, 0.6, 0.2}

	a := s.Derive(x, 0)
	b := s.Derive(x, 123.456)

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("derivative depends on t at index %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestEnergy_ZeroAtRest(t *testing.T) {
	p := DefaultParams()
	s := NewTwoMassSpring(p)
	eq := Equilibrium(p)

	e := s.Energy(AbsoluteState(eq, 0, 0, 0, 0))
	if math.Abs(e) > 1e-12 {
		t.Errorf("energy at rest should be 0, got %g", e)
	}
}

func TestRelativeState_RoundTrip(t *testing.T) {
	eq := Equilibrium(DefaultParams())
	x := AbsoluteState(eq, 0.05, -0.2, -0.03, 0.4)
	y := RelativeState(eq, x)

	want := dynamo.State{0.05, -0.2, -0.03, 0.4}
	for i := range want {
		if math.Abs(y[i]-want[i]) > 1e-12 {
			t.Errorf("relative[%d]: got %g, want %g", i, y[i], want[i])
		}
	}
}

func TestSetParam_RejectsNonPositive(t *testing.T) {
	s := NewTwoMassSpring(DefaultParams())
	s.SetParam("k1", -10)
	if s.P.K1 != 100.0 {
		t.Errorf("non-positive stiffness should be ignored, got %f", s.P.K1)
	}
	s.SetParam("m2", 3.0)
	if s.P.M2 != 3.0 {
		t.Errorf("expected m2 3.0, got %f", s.P.M2)
	}
}
