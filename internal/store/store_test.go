package store

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
)

func sampleRun() (RunMetadata, *sim.Trajectory) {
	p := physics.DefaultParams()
	meta := RunMetadata{
		Integrator:  "rk45",
		Params:      p,
		Equilibrium: physics.Equilibrium(p),
		T0:          0,
		TFinal:      1.0,
		NumPoints:   2,
		Omega1:      6.1,
		Omega2:      11.3,
	}
	traj := &sim.Trajectory{
		Times: []float64{0.0, 1.0},
		States: []dynamo.State{
			{0.5, 0.0, 1.0, 0.0},
			{0.45, -0.2, 0.95, -0.1},
		},
		Metrics:     map[string]float64{"energy_drift": 1e-8},
		EnergyDrift: 1e-8,
		StepsTaken:  37,
	}
	return meta, traj
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, traj := sampleRun()
	runID, err := st.Save(meta, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Integrator != "rk45" {
		t.Errorf("expected integrator rk45, got %s", loaded.Integrator)
	}
	if loaded.Params.K1 != meta.Params.K1 {
		t.Errorf("params not round-tripped: %+v", loaded.Params)
	}
	if loaded.StepsTaken != 37 {
		t.Errorf("expected 37 steps, got %d", loaded.StepsTaken)
	}

	back, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", back.Len())
	}
	for i := range traj.States {
		for j := range traj.States[i] {
			if math.Abs(back.States[i][j]-traj.States[i][j]) > 1e-12 {
				t.Errorf("state[%d][%d] not round-tripped: %g vs %g",
					i, j, back.States[i][j], traj.States[i][j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	meta, traj := sampleRun()
	if _, err := st.Save(meta, traj); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, traj := sampleRun()
	runID, err := st.Save(meta, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "metadata.json")); err != nil {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "states.csv")); err != nil {
		t.Error("states.csv not created")
	}
}

func TestExportCSV_Header(t *testing.T) {
	_, traj := sampleRun()

	var buf bytes.Buffer
	if err := ExportCSV(&buf, traj); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,x1,v1,x2,v2" {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestExportJSON(t *testing.T) {
	meta, traj := sampleRun()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, traj); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"times"`) || !strings.Contains(out, `"states"`) {
		t.Errorf("json export missing fields: %s", out)
	}
}
