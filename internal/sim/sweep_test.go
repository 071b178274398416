package sim

import (
	"context"
	"testing"

	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/integrators"
	"github.com/san-kum/vibsim/internal/physics"
)

func TestSweepRun(t *testing.T) {
	p := physics.DefaultParams()
	eq := physics.Equilibrium(p)

	sw := NewSweep(
		func() dynamo.System { return physics.NewTwoMassSpring(p) },
		func() dynamo.Integrator { return integrators.NewRK45() },
	)

	inits := []dynamo.State{
		physics.AbsoluteState(eq, 0.01, 0, 0, 0),
		physics.AbsoluteState(eq, 0.05, 0, 0.03, 0),
		physics.AbsoluteState(eq, 0, 0, -0.02, 0.1),
	}

	cfg := DefaultConfig()
	cfg.TFinal = 2.0
	cfg.NumPoints = 100

	results, err := sw.Run(context.Background(), inits, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != len(inits) {
		t.Fatalf("expected %d trajectories, got %d", len(inits), len(results))
	}

	for i, traj := range results {
		if traj.Len() != 100 {
			t.Errorf("trajectory %d has %d samples, want 100", i, traj.Len())
		}
		for j, v := range inits[i] {
			if traj.States[0][j] != v {
				t.Errorf("trajectory %d initial state mutated", i)
				break
			}
		}
	}
}
