package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/integrators"
	"github.com/san-kum/vibsim/internal/modal"
	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
)

// The integrated trajectory and the closed-form modal reconstruction are
// independent routes to the same motion; they must agree pointwise.
func TestCompare_NumericalVsModal(t *testing.T) {
	p, err := physics.NewParams(0.020, 0.030, 10.32, 10.32, 0, 0, 9.81)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	eq := physics.Equilibrium(p)

	cfg := sim.DefaultConfig()
	cfg.TFinal = 5.0
	cfg.NumPoints = 1000

	s := sim.New(physics.NewTwoMassSpring(p), integrators.NewRK45())
	x0 := physics.AbsoluteState(eq, 0, 0, 0.055, 0)
	numeric, err := s.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	dec, err := modal.Decompose(p)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	sol, err := modal.Fit(dec, modal.Vec2{0, 0.055}, modal.Vec2{})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	analytic := modal.Reconstruct(dec, sol, eq, numeric.Times)

	dev, err := Compare(numeric, analytic)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	if dev.Max > 1e-3 {
		t.Errorf("numerical and modal trajectories disagree: max deviation %g at t=%g",
			dev.Max, dev.MaxTime)
	}
}

func TestCompare_MismatchedGrids(t *testing.T) {
	a := &sim.Trajectory{Times: []float64{0, 1}, States: []dynamo.State{{0}, {0}}}
	b := &sim.Trajectory{Times: []float64{0}, States: []dynamo.State{{0}}}

	_, err := Compare(a, b)
	if !errors.Is(err, ErrMismatchedGrids) {
		t.Errorf("expected ErrMismatchedGrids, got %v", err)
	}

	c := &sim.Trajectory{Times: []float64{0, 2}, States: []dynamo.State{{0}, {0}}}
	_, err = Compare(a, c)
	if !errors.Is(err, ErrMismatchedGrids) {
		t.Errorf("expected ErrMismatchedGrids for shifted grid, got %v", err)
	}
}

func TestCompare_SelfZero(t *testing.T) {
	a := &sim.Trajectory{
		Times:  []float64{0, 1, 2},
		States: []dynamo.State{{1, 2}, {3, 4}, {5, 6}},
	}

	dev, err := Compare(a, a)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if dev.Max != 0 || dev.RMS != 0 {
		t.Errorf("self-comparison should be exactly zero, got %+v", dev)
	}
}
