package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/vibsim/internal/analysis"
	"github.com/san-kum/vibsim/internal/config"
	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/export"
	"github.com/san-kum/vibsim/internal/integrators"
	"github.com/san-kum/vibsim/internal/metrics"
	"github.com/san-kum/vibsim/internal/modal"
	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
	"github.com/san-kum/vibsim/internal/store"
	"github.com/san-kum/vibsim/internal/viz"
)

var (
	dataDir        string
	configFile     string
	preset         string
	integratorName string
	tFinal         float64
	numPoints      int
	dt             float64
	tol            float64
	// Equilibrium-relative initial conditions
	y1, v1 float64
	y2, v2 float64
	// Physical constants
	m1, m2 float64
	k1, k2 float64
	l1, l2 float64
	grav   float64
	// Output options
	showPlot bool
	svgPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vibsim",
		Short: "two-mass spring chain vibration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vibsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate the free vibration and save the run",
		RunE:  runSimulation,
	}
	addSetupFlags(runCmd)
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "render panels after the run")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write panel plot to SVG file")

	equilibriumCmd := &cobra.Command{
		Use:   "equilibrium",
		Short: "static hanging positions of both masses",
		RunE:  showEquilibrium,
	}
	addSetupFlags(equilibriumCmd)

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "natural frequencies, mode shapes, and fitted amplitudes",
		RunE:  showModes,
	}
	addSetupFlags(modesCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator] ...",
		Short: "deviation of numerical integrators from the closed-form solution",
		RunE:  compareIntegrators,
	}
	addSetupFlags(compareCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write panel plot to SVG file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-14s m=[%g %g] k=[%g %g] t=%.1fs\n",
					name, cfg.Params.M1, cfg.Params.M2, cfg.Params.K1, cfg.Params.K2, cfg.TFinal)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the chain swing in the terminal",
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)

	rootCmd.AddCommand(runCmd, equilibriumCmd, modesCmd, compareCmd, analyzeCmd,
		plotCmd, listCmd, exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&integratorName, "integrator", "rk45", "integrator (euler, rk4, rk45)")
	f.Float64Var(&tFinal, "time", config.DefaultTFinal, "duration")
	f.IntVar(&numPoints, "points", config.DefaultNumPoints, "number of samples")
	f.Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep (euler, rk4)")
	f.Float64Var(&tol, "tol", config.DefaultTolerance, "error tolerance (rk45)")
	f.Float64Var(&y1, "y1", 0.05, "initial displacement of mass 1 from equilibrium")
	f.Float64Var(&v1, "v1", 0.0, "initial velocity of mass 1")
	f.Float64Var(&y2, "y2", 0.03, "initial displacement of mass 2 from equilibrium")
	f.Float64Var(&v2, "v2", 0.0, "initial velocity of mass 2")
	f.Float64Var(&m1, "m1", 1.0, "mass 1 (kg)")
	f.Float64Var(&m2, "m2", 2.0, "mass 2 (kg)")
	f.Float64Var(&k1, "k1", 100.0, "spring 1 stiffness (N/m)")
	f.Float64Var(&k2, "k2", 50.0, "spring 2 stiffness (N/m)")
	f.Float64Var(&l1, "l1", 0.1, "spring 1 natural length (m)")
	f.Float64Var(&l2, "l2", 0.15, "spring 2 natural length (m)")
	f.Float64Var(&grav, "g", physics.DefaultGravity, "gravitational acceleration")
}

// resolveConfig layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("integrator") {
		cfg.Integrator = integratorName
	}
	if f.Changed("time") {
		cfg.TFinal = tFinal
	}
	if f.Changed("points") {
		cfg.NumPoints = numPoints
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("tol") {
		cfg.Tolerance = tol
	}
	if f.Changed("y1") {
		cfg.InitState.Y1 = y1
	}
	if f.Changed("v1") {
		cfg.InitState.V1 = v1
	}
	if f.Changed("y2") {
		cfg.InitState.Y2 = y2
	}
	if f.Changed("v2") {
		cfg.InitState.V2 = v2
	}
	if f.Changed("m1") {
		cfg.Params.M1 = m1
	}
	if f.Changed("m2") {
		cfg.Params.M2 = m2
	}
	if f.Changed("k1") {
		cfg.Params.K1 = k1
	}
	if f.Changed("k2") {
		cfg.Params.K2 = k2
	}
	if f.Changed("l1") {
		cfg.Params.L1 = l1
	}
	if f.Changed("l2") {
		cfg.Params.L2 = l2
	}
	if f.Changed("g") {
		cfg.Params.G = grav
	}

	return cfg, nil
}

func getIntegrator(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s (euler, rk4, rk45)", name)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p, err := cfg.ToParams()
	if err != nil {
		return err
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	dyn := physics.NewTwoMassSpring(p)
	eq := physics.Equilibrium(p)
	x0 := physics.AbsoluteState(eq, cfg.InitState.Y1, cfg.InitState.V1, cfg.InitState.Y2, cfg.InitState.V2)

	simulator := sim.New(dyn, integ)
	simulator.AddMetric(metrics.NewEnergyDrift(dyn))
	simulator.AddMetric(metrics.NewPeakDisplacement("peak_y1", physics.IdxX1, eq.X1))
	simulator.AddMetric(metrics.NewPeakDisplacement("peak_y2", physics.IdxX2, eq.X2))

	fmt.Printf("running %s from t=%g to t=%g (%d samples)...\n",
		cfg.Integrator, cfg.T0, cfg.TFinal, cfg.NumPoints)
	start := time.Now()

	traj, err := simulator.Run(context.Background(), x0, cfg.ToSimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := store.RunMetadata{
		Integrator:  cfg.Integrator,
		Params:      p,
		Equilibrium: eq,
		T0:          cfg.T0,
		TFinal:      cfg.TFinal,
		NumPoints:   cfg.NumPoints,
	}

	dec, decErr := modal.Decompose(p)
	if decErr == nil {
		meta.Omega1 = dec.Omega[0]
		meta.Omega2 = dec.Omega[1]
	}

	runID, err := st.Save(meta, traj)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("internal steps: %d\n", traj.StepsTaken)
	fmt.Printf("\nparameters: m=[%g %g] kg, k=[%g %g] N/m, l=[%g %g] m, g=%g\n",
		p.M1, p.M2, p.K1, p.K2, p.L1, p.L2, p.G)
	fmt.Printf("equilibrium: x1=%.6f m, x2=%.6f m\n", eq.X1, eq.X2)
	if decErr == nil {
		fmt.Printf("modal frequencies: %.4f, %.4f rad/s (%.4f, %.4f Hz)\n",
			dec.Omega[0], dec.Omega[1], dec.Omega[0]/(2*math.Pi), dec.Omega[1]/(2*math.Pi))
	}
	fmt.Println("\nmetrics:")
	for name, val := range traj.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	fmt.Printf("  energy_drift_endpoint: %.6g\n", traj.EnergyDrift)

	if showPlot {
		fmt.Println()
		fmt.Print(viz.RenderPanels(traj, eq))
	}
	if svgPath != "" {
		if err := export.SavePanels(svgPath, traj, eq); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}

	return nil
}

func showEquilibrium(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.ToParams()
	if err != nil {
		return err
	}

	eq := physics.Equilibrium(p)
	fmt.Printf("spring 1 stretch: %.6f m (carries both masses)\n", eq.X1-p.L1)
	fmt.Printf("spring 2 stretch: %.6f m (carries mass 2)\n", eq.X2-eq.X1-p.L2)
	fmt.Printf("mass 1 hangs at:  %.6f m\n", eq.X1)
	fmt.Printf("mass 2 hangs at:  %.6f m\n", eq.X2)
	return nil
}

func showModes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.ToParams()
	if err != nil {
		return err
	}

	dec, err := modal.Decompose(p)
	if err != nil {
		return err
	}

	for i := 0; i < 2; i++ {
		w := dec.Omega[i]
		fmt.Printf("mode %d: omega=%.4f rad/s  f=%.4f Hz  T=%.4f s  shape=(%.4f, %.4f)\n",
			i+1, w, w/(2*math.Pi), 2*math.Pi/w, dec.Modes[i][0], dec.Modes[i][1])
	}

	mv := dec.MassMatrix.MulVec(dec.Modes[1])
	fmt.Printf("\nmass-orthogonality v1'Mv2 = %.3e\n", dec.Modes[0].Dot(mv))

	y0 := modal.Vec2{cfg.InitState.Y1, cfg.InitState.Y2}
	v0 := modal.Vec2{cfg.InitState.V1, cfg.InitState.V2}
	sol, err := modal.Fit(dec, y0, v0)
	if err != nil {
		return err
	}
	fmt.Printf("\nfit to y0=(%g, %g), v0=(%g, %g):\n", y0[0], y0[1], v0[0], v0[1])
	for i := 0; i < 2; i++ {
		fmt.Printf("  A%d=%.6f m  phi%d=%.6f rad\n", i+1, sol.A[i], i+1, sol.Phi[i])
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.ToParams()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = []string{"euler", "rk4", "rk45"}
	}

	dec, err := modal.Decompose(p)
	if err != nil {
		return err
	}
	eq := physics.Equilibrium(p)
	y0 := modal.Vec2{cfg.InitState.Y1, cfg.InitState.Y2}
	v0 := modal.Vec2{cfg.InitState.V1, cfg.InitState.V2}
	sol, err := modal.Fit(dec, y0, v0)
	if err != nil {
		return err
	}

	x0 := physics.AbsoluteState(eq, y0[0], v0[0], y0[1], v0[1])

	fmt.Printf("comparing against closed-form solution (t=%.1fs, %d samples)\n\n",
		cfg.TFinal, cfg.NumPoints)
	fmt.Printf("%-8s  %12s  %12s  %12s  %10s  %10s\n",
		"integ", "max_dev", "rms_dev", "drift", "steps", "time_ms")

	for _, name := range names {
		integ, err := getIntegrator(name)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}

		simulator := sim.New(physics.NewTwoMassSpring(p), integ)

		start := time.Now()
		traj, err := simulator.Run(context.Background(), x0, cfg.ToSimConfig())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}

		exact := modal.Reconstruct(dec, sol, eq, traj.Times)
		dev, err := analysis.Compare(traj, exact)
		if err != nil {
			return err
		}

		fmt.Printf("%-8s  %12.3e  %12.3e  %12.3e  %10d  %10.2f\n",
			name, dev.Max, dev.RMS, traj.EnergyDrift, traj.StepsTaken,
			float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() < 4 {
		return fmt.Errorf("run %s has too few samples to analyze", runID)
	}

	// Analyze the displacement of mass 1 from its hanging position.
	data := make([]float64, traj.Len())
	for i, x := range traj.States {
		data[i] = x[physics.IdxX1] - meta.Equilibrium.X1
	}

	span := traj.Times[traj.Len()-1] - traj.Times[0]
	sampleRate := float64(traj.Len()-1) / span

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(data)
	fmt.Println(viz.RenderSpectrum(ps[:len(ps)/4], meta.Omega1, meta.Omega2))
	fmt.Println()

	dominant := analysis.DominantFrequency(data, sampleRate)
	fmt.Printf("dominant frequency: %.4f rad/s (%.4f Hz)\n", dominant, dominant/(2*math.Pi))
	if meta.Omega1 > 0 {
		fmt.Printf("modal frequencies:  %.4f, %.4f rad/s\n", meta.Omega1, meta.Omega2)
	}

	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s (%s, %d samples)\n\n", meta.ID, meta.Integrator, traj.Len())
	fmt.Print(viz.RenderPanels(traj, meta.Equilibrium))

	if svgPath != "" {
		if err := export.SavePanels(svgPath, traj, meta.Equilibrium); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINTEG\tDURATION\tPOINTS\tOMEGA1\tOMEGA2\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%.3f\t%.3f\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.TFinal-run.T0,
			run.NumPoints,
			run.Omega1,
			run.Omega2,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return store.ExportCSV(os.Stdout, traj)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, *meta, traj)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.ToParams()
	if err != nil {
		return err
	}
	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	dyn := physics.NewTwoMassSpring(p)
	eq := physics.Equilibrium(p)
	x0 := physics.AbsoluteState(eq, cfg.InitState.Y1, cfg.InitState.V1, cfg.InitState.Y2, cfg.InitState.V2)

	m := viz.NewModel(dyn, integ, x0, cfg.Dt)
	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}
