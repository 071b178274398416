package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/vibsim/internal/physics"
)

func TestEnergyDrift_ConstantEnergy(t *testing.T) {
	p := physics.DefaultParams()
	dyn := physics.NewTwoMassSpring(p)
	eq := physics.Equilibrium(p)

	m := NewEnergyDrift(dyn)

	// Same displaced state observed repeatedly: zero drift.
	x := physics.AbsoluteState(eq, 0.05, 0, 0.03, 0)
	for i := 0; i < 5; i++ {
		m.Observe(x, float64(i))
	}

	if m.Value() != 0 {
		t.Errorf("expected zero drift for constant state, got %g", m.Value())
	}
}

func TestEnergyDrift_DetectsLoss(t *testing.T) {
	p := physics.DefaultParams()
	dyn := physics.NewTwoMassSpring(p)
	eq := physics.Equilibrium(p)

	m := NewEnergyDrift(dyn)
	m.Observe(physics.AbsoluteState(eq, 0.10, 0, 0.10, 0), 0)
	m.Observe(physics.AbsoluteState(eq, 0.05, 0, 0.05, 0), 1)

	if m.Value() <= 0 {
		t.Error("expected positive drift after energy loss")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestPeakDisplacement(t *testing.T) {
	p := physics.DefaultParams()
	eq := physics.Equilibrium(p)

	m := NewPeakDisplacement("peak_x1", physics.IdxX1, eq.X1)

	m.Observe(physics.AbsoluteState(eq, 0.02, 0, 0, 0), 0)
	m.Observe(physics.AbsoluteState(eq, -0.07, 0, 0, 0), 1)
	m.Observe(physics.AbsoluteState(eq, 0.04, 0, 0, 0), 2)

	if math.Abs(m.Value()-0.07) > 1e-12 {
		t.Errorf("expected peak 0.07, got %g", m.Value())
	}
}
