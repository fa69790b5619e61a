package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitlab/internal/analysis"
	"github.com/san-kum/orbitlab/internal/body"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/metrics"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/store"
	"github.com/san-kum/orbitlab/internal/viz"
)

var (
	dataDir    string
	configPath string
	yamlPath   string
	dt         float64
	duration   float64
	outPath    string
	validate   bool
	bodyName   string
	axis       string
	fps        int
	frameSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitlab",
		Short: "gravitational n-body simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configPath, "config", "config.txt", "classic config file path")
	runCmd.Flags().StringVar(&yamlPath, "yaml", "", "yaml config file path (overrides --config)")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultTimeStep, "timestep in seconds")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "total simulated length in seconds")
	runCmd.Flags().StringVar(&outPath, "out", "", "write an extra trajectory copy to this file")
	runCmd.Flags().BoolVar(&validate, "validate", false, "abort if any body state becomes non-finite")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the default solar system dataset",
		RunE:  listBodies,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one trajectory column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "", "body name (default: first column)")
	plotCmd.Flags().StringVar(&axis, "axis", "x", "axis: x, y or z")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate the dominant orbital period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyName, "body", "", "body name (default: first column)")
	analyzeCmd.Flags().StringVar(&axis, "axis", "x", "axis: x, y or z")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the simulation in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configPath, "config", "config.txt", "classic config file path")
	liveCmd.Flags().StringVar(&yamlPath, "yaml", "", "yaml config file path (overrides --config)")
	liveCmd.Flags().Float64Var(&dt, "dt", 3600, "timestep in seconds")
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&frameSteps, "steps-per-frame", 24, "simulation steps per rendered frame")

	rootCmd.AddCommand(runCmd, bodiesCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the YAML config when --yaml is set, otherwise the
// classic file, and applies explicit flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var (
		cfg    *config.Config
		source string
		err    error
	)
	if yamlPath != "" {
		cfg, err = config.Load(yamlPath)
		source = yamlPath
	} else {
		cfg, err = config.LoadClassic(configPath)
		source = configPath
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("dt") {
		cfg.TimeStep = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("validate") {
		cfg.ValidateState = validate
	}
	return cfg, source, nil
}

// progressPrinter prints each whole-percent marker once as simulated
// time advances. 100% is announced by the caller after the run ends.
type progressPrinter struct {
	total float64
	next  int
}

func (p *progressPrinter) OnStep(bodies []*body.Body, step int, t float64) {
	for p.next < 99 && t > float64(p.next+1)*p.total/100 {
		p.next++
		fmt.Printf("%d%% complete\n", p.next)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bodies := cfg.BuildBodies()
	fmt.Printf("simulation time step: %g s\ttotal simulated length: %g s\n", cfg.TimeStep, cfg.Duration)
	if len(bodies) == 0 {
		fmt.Println("no bodies configured, loading default solar system")
		source = "default"
	} else {
		fmt.Printf("bodies being simulated: %d\n", len(bodies))
	}

	s := sim.New(bodies)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	run, err := st.Begin(source, cfg.TimeStep, cfg.Duration, s.Bodies())
	if err != nil {
		return err
	}
	s.AddObserver(run.Writer())

	var extra *store.TrajectoryWriter
	if outPath == "" {
		outPath = cfg.Output
	}
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		extra = store.NewTrajectoryWriter(f)
		if err := extra.WriteHeader(s.Bodies()); err != nil {
			return err
		}
		s.AddObserver(extra)
	}

	s.AddObserver(&progressPrinter{total: cfg.Duration})
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewMomentum())
	s.AddMetric(metrics.NewBarycenterOffset())

	fmt.Println("beginning simulation")
	start := time.Now()

	result, runErr := s.Run(cmd.Context(), sim.Config{
		Dt:            cfg.TimeStep,
		Duration:      cfg.Duration,
		ValidateState: cfg.ValidateState,
	})
	elapsed := time.Since(start)

	if result != nil {
		if err := run.Finish(result.Steps, result.Metrics); err != nil {
			return err
		}
		if extra != nil {
			if err := extra.Flush(); err != nil {
				return err
			}
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println("100% complete")
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS (kg)\tPOSITION (m)\tVELOCITY (m/s)")
	for _, b := range body.DefaultSolarSystem() {
		fmt.Fprintf(w, "%s\t%.4e\t%s\t%s\n", b.Name, b.Mass, b.Pos, b.Vel)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tSOURCE\tDT\tDURATION\tSTEPS\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%.0fs\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Source,
			run.Dt,
			run.Duration,
			run.Steps,
			run.Bodies,
		)
	}
	return w.Flush()
}

// resolveColumn finds the trajectory column for a body/axis pair, e.g.
// body "Earth" axis "y" matches the "EarthY" header column.
func resolveColumn(names []string, bodyName, axis string) (int, error) {
	suffix := strings.ToUpper(axis)
	if suffix != "X" && suffix != "Y" && suffix != "Z" {
		return 0, fmt.Errorf("invalid axis %q: want x, y or z", axis)
	}
	if bodyName == "" {
		return 0, nil
	}
	want := bodyName + suffix
	for i, n := range names {
		if n == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column %q in run (have %d columns)", want, len(names))
}

func loadColumn(runID string) (*store.RunMetadata, string, []float64, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, "", nil, err
	}
	names, rows, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, "", nil, err
	}
	col, err := resolveColumn(names, bodyName, axis)
	if err != nil {
		return nil, "", nil, err
	}

	data := make([]float64, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			data = append(data, row[col])
		}
	}
	if len(data) == 0 {
		return nil, "", nil, fmt.Errorf("no data to plot")
	}
	return meta, names[col], data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, column, data, err := loadColumn(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(column+" vs time"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, column, data, err := loadColumn(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", column)

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) > 4 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	period := analysis.DominantPeriod(data, meta.Dt)
	if period == 0 {
		fmt.Println("no dominant period found")
		return nil
	}
	fmt.Printf("dominant period: %.4g s (%.2f days)\n", period, period/86400)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	names, rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(meta, names, rows)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("dt") && cfg.TimeStep == config.DefaultTimeStep {
		// The classic default of one second is far too fine to watch.
		cfg.TimeStep = dt
	}

	s := sim.New(cfg.BuildBodies())
	m := viz.NewModel(s, cfg.TimeStep, frameSteps, fps)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
