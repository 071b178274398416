package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/vibsim/internal/dynamo"
)

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	finalEnergy := dyn.Energy(x)
	drift := math.Abs(finalEnergy-initialEnergy) / initialEnergy

	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, errRatio, dtNext := integrator.StepAdaptive(dyn, x0, 0, 0.01, 1e-6)

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if errRatio > 1 {
		t.Errorf("small step on smooth system should be accepted, errRatio=%f", errRatio)
	}
	if dtNext <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", dtNext)
	}
}

func TestRK45_RejectsCoarseStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	// A full-period step cannot meet a tight tolerance.
	_, errRatio, dtNext := integrator.StepAdaptive(dyn, x0, 0, 2*math.Pi, 1e-12)

	if errRatio <= 1 {
		t.Errorf("expected rejection for coarse step, errRatio=%f", errRatio)
	}
	if dtNext >= 2*math.Pi {
		t.Errorf("rejected step should suggest a smaller dt, got %f", dtNext)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x4 := x0.Clone()
	x45 := x0.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(dyn, x4, float64(i)*dt, dt)
		x45 = rk45.Step(dyn, x45, float64(i)*dt, dt)
	}

	e4 := dyn.Energy(x4)
	e45 := dyn.Energy(x45)

	if math.Abs(e45-0.5) > math.Abs(e4-0.5) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
