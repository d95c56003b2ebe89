package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ikswarm/internal/automation"
	"github.com/san-kum/ikswarm/internal/config"
	"github.com/san-kum/ikswarm/internal/metrics"
	"github.com/san-kum/ikswarm/internal/solver"
	"github.com/san-kum/ikswarm/internal/storage"
	"github.com/san-kum/ikswarm/internal/swarm"
	"github.com/san-kum/ikswarm/internal/tune"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	chainName  string
	targetStr  string
	particles  int
	iterations int
	inertia    float64
	cognitive  float64
	social     float64
	seed       int64
	tolerance  float64
	vmaxFrac   float64
	parallel   bool
	save       bool
	// Benchmark dimensionality
	benchDim int
	// Sweep range
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Trial count
	numTrials int
	// Tune grids (comma-separated candidate values)
	inertiaGrid   string
	cognitiveGrid string
	socialGrid    string
)

// main registers the ikswarm commands and flags and executes the root
// command. It exits the process with status 1 if execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "ikswarm",
		Short: "particle swarm inverse kinematics toolkit",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "results directory (overrides config)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve a reach problem",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	solveCmd.Flags().StringVar(&chainName, "chain", "extension-arm", "chain name")
	solveCmd.Flags().StringVar(&targetStr, "target", "-2,2,3", "target position x,y,z")
	solveCmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "swarm size")
	solveCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "iteration budget")
	solveCmd.Flags().Float64Var(&inertia, "inertia", config.DefaultInertia, "inertia weight")
	solveCmd.Flags().Float64Var(&cognitive, "cognitive", config.DefaultCognitive, "cognitive coefficient")
	solveCmd.Flags().Float64Var(&social, "social", config.DefaultSocial, "social coefficient")
	solveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	solveCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "early-exit cost tolerance (0 = off)")
	solveCmd.Flags().Float64Var(&vmaxFrac, "vmax", 0, "velocity cap as fraction of bounds range (0 = off)")
	solveCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate the swarm concurrently")
	solveCmd.Flags().BoolVar(&save, "save", false, "store the completed run")

	benchCmd := &cobra.Command{
		Use:   "bench [function]",
		Short: "run a benchmark objective, or \"all\"",
		Args:  cobra.ExactArgs(1),
		RunE:  benchFunctions,
	}
	benchCmd.Flags().IntVar(&benchDim, "dim", 3, "benchmark dimensionality")
	benchCmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "swarm size")
	benchCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "iteration budget")
	benchCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search swarm coefficients",
		RunE:  tuneSwarm,
	}
	tuneCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	tuneCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	tuneCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	tuneCmd.Flags().StringVar(&inertiaGrid, "inertia-grid", "", "comma-separated inertia candidates")
	tuneCmd.Flags().StringVar(&cognitiveGrid, "cognitive-grid", "", "comma-separated cognitive candidates")
	tuneCmd.Flags().StringVar(&socialGrid, "social-grid", "", "comma-separated social candidates")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one swarm parameter across a range",
		RunE:  sweepParameter,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "inertia", "parameter to sweep (inertia, cognitive, social, particles)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of points")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat the solve with derived seeds",
		RunE:  runTrials,
	}
	trialsCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	trialsCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	trialsCmd.Flags().IntVar(&numTrials, "n", 20, "number of trials")
	trialsCmd.Flags().Int64Var(&seed, "seed", 0, "base seed (0 = time-based)")
	trialsCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "success threshold (0 = 1e-3)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of solves",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	batchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "list catalog chains",
		RunE:  listChains,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(solveCmd, benchCmd, tuneCmd, sweepCmd, trialsCmd, batchCmd, chainsCmd, presetsCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBaseConfig resolves the effective configuration: preset first, then
// config file, then explicit CLI flags on top.
func loadBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("chain") {
		cfg.Chain = config.ChainConfig{Name: chainName}
	}
	if flags.Changed("target") {
		t, err := parseTarget(targetStr)
		if err != nil {
			return nil, err
		}
		cfg.Target = t
	}
	if flags.Changed("particles") {
		cfg.Swarm.Particles = particles
	}
	if flags.Changed("iterations") {
		cfg.Swarm.Iterations = iterations
	}
	if flags.Changed("inertia") {
		cfg.Swarm.Inertia = inertia
	}
	if flags.Changed("cognitive") {
		cfg.Swarm.Cognitive = cognitive
	}
	if flags.Changed("social") {
		cfg.Swarm.Social = social
	}
	if flags.Changed("seed") {
		cfg.Swarm.Seed = seed
	}
	if flags.Changed("tolerance") {
		cfg.Swarm.Tolerance = tolerance
	}
	if flags.Changed("vmax") {
		cfg.Swarm.VMaxFrac = vmaxFrac
	}
	if flags.Changed("parallel") {
		cfg.Swarm.Parallel = parallel
	}
	if flags.Changed("save") {
		cfg.Output.Save = save
	}

	return cfg, nil
}

func parseTarget(s string) ([3]float64, error) {
	var target [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return target, fmt.Errorf("target must be x,y,z, got %q", s)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return target, fmt.Errorf("bad target coordinate %q: %w", part, err)
		}
		target[i] = v
	}
	return target, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad grid value %q: %w", part, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func resultsDir(cfg *config.Config) string {
	if dataDir != "" {
		return dataDir
	}
	if cfg != nil && cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return config.DefaultResultsDir
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}

	registry := solver.NewRegistry()
	s := solver.New(cfg, registry)
	s.AddMetric(metrics.NewConvergence())
	s.AddMetric(metrics.NewSpread())
	s.AddMetric(metrics.NewStagnation())
	s.AddMetric(metrics.NewRate())

	name := cfg.Chain.Name
	if name == "" {
		name = "custom"
	}
	fmt.Printf("solving %s reach to (%.3f, %.3f, %.3f)...\n", name, cfg.Target[0], cfg.Target[1], cfg.Target[2])

	sol, err := s.Solve(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", sol.Elapsed)
	fmt.Printf("best cost: %.6e\n", sol.BestCost)
	fmt.Printf("joints: %s\n", formatVec(sol.BestPosition))
	fmt.Printf("end effector: (%.4f, %.4f, %.4f)\n", sol.EndEffector[0], sol.EndEffector[1], sol.EndEffector[2])
	fmt.Printf("iterations: %d (%d evaluations)\n", sol.Iterations, sol.Evaluations)

	fmt.Println("\nmetrics:")
	for name, val := range sol.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if cfg.Output.Save {
		st := storage.New(resultsDir(cfg))
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sol, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func benchFunctions(cmd *cobra.Command, args []string) error {
	registry := solver.NewRegistry()

	names := []string{args[0]}
	if args[0] == "all" {
		names = registry.ListBenchmarks()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tDIM\tBEST\tOPTIMUM\tERROR\tTIME")

	for _, fn := range names {
		b, err := registry.GetBenchmark(fn, benchDim)
		if err != nil {
			return err
		}

		cfg := swarm.DefaultConfig()
		cfg.Dim = b.Dim()
		cfg.Bounds = b.Bounds
		cfg.Particles = particles
		cfg.Iterations = iterations
		cfg.RandSeed = seed

		start := time.Now()
		res, err := swarm.Optimize(context.Background(), b, cfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%.4e\t%.4f\t%.4e\t%v\n",
			fn, b.Dim(), res.BestCost, b.Optimum, res.BestCost-b.Optimum, elapsed)
	}

	return w.Flush()
}

func tuneSwarm(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}

	grid := tune.DefaultGrid()
	if inertiaGrid != "" {
		if grid.Inertia, err = parseFloats(inertiaGrid); err != nil {
			return err
		}
	}
	if cognitiveGrid != "" {
		if grid.Cognitive, err = parseFloats(cognitiveGrid); err != nil {
			return err
		}
	}
	if socialGrid != "" {
		if grid.Social, err = parseFloats(socialGrid); err != nil {
			return err
		}
	}

	registry := solver.NewRegistry()
	fmt.Printf("searching %d combinations...\n", grid.Size())

	best, samples, err := tune.Search(context.Background(), grid, cfg, registry)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INERTIA\tCOGNITIVE\tSOCIAL\tBEST_COST\tITERS")
	top := samples
	if len(top) > 10 {
		top = top[:10]
	}
	for _, s := range top {
		fmt.Fprintf(w, "%.2f\t%.2f\t%.2f\t%.3e\t%d\n", s.Inertia, s.Cognitive, s.Social, s.BestCost, s.Iterations)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: w=%.2f c1=%.2f c2=%.2f cost=%.3e\n", best.Inertia, best.Cognitive, best.Social, best.BestCost)
	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}

	registry := solver.NewRegistry()
	points, err := automation.RunSweep(context.Background(), sweep, cfg, registry)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\tBEST_COST\tITERS")
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.3e\t%d\n", p.Value, p.BestCost, p.Iterations)
	}
	return w.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}

	tc := &automation.TrialsConfig{Trials: numTrials, BaseSeed: seed, Tolerance: tolerance}

	registry := solver.NewRegistry()
	name := cfg.Chain.Name
	if name == "" {
		name = "custom"
	}
	fmt.Printf("running %d trials of %s...\n", numTrials, name)

	results, stats, err := automation.RunTrials(context.Background(), tc, cfg, registry)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tBEST_COST\tITERS\tOK")
	for _, r := range results {
		ok := ""
		if r.Success {
			ok = "yes"
		}
		fmt.Fprintf(w, "%d\t%d\t%.3e\t%d\t%s\n", r.Trial, r.Seed, r.BestCost, r.Iterations, ok)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsuccess rate: %.1f%%\n", stats.SuccessRate*100)
	fmt.Printf("best: %.3e  worst: %.3e  mean: %.3e\n", stats.Best, stats.Worst, stats.MeanCost)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	registry := solver.NewRegistry()
	results, err := automation.RunScenario(context.Background(), scenario, cfg, registry)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tCHAIN\tTARGET\tBEST_COST\tITERS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t(%.2f, %.2f, %.2f)\t%.3e\t%d\n",
			r.Step, r.Solution.Chain,
			r.Solution.Target[0], r.Solution.Target[1], r.Solution.Target[2],
			r.Solution.BestCost, r.Solution.Iterations)
	}
	return w.Flush()
}

func listChains(cmd *cobra.Command, args []string) error {
	registry := solver.NewRegistry()

	for _, name := range registry.ListChains() {
		chain, err := registry.GetChain(name)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d joints)\n", name, chain.Dim())
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  #\tKIND\tD\tA\tALPHA\tMIN\tMAX")
		for i, j := range chain.Joints() {
			fmt.Fprintf(w, "  %d\t%s\t%.3f\t%.3f\t%.4f\t%.4f\t%.4f\n",
				i, j.Kind, j.D, j.A, j.Alpha, j.Min, j.Max)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHAIN\tPARTICLES\tITERS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			name, p.Config.Chain.Name, p.Config.Swarm.Particles, p.Config.Swarm.Iterations, p.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(resultsDir(nil))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHAIN\tTIME\tTARGET\tBEST_COST\tEVALS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t(%.2f, %.2f, %.2f)\t%.3e\t%d\n",
			run.ID, run.Chain,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Target[0], run.Target[1], run.Target[2],
			run.BestCost, run.Evaluations)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(resultsDir(nil))
	return st.ExportJSON(os.Stdout, args[0])
}
