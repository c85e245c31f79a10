package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/logging"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/physics"
	"github.com/san-kum/predprey/internal/sim"
	"github.com/san-kum/predprey/internal/viz"
)

var version = "dev"

var (
	configFile string
	preset     string
	integrator string
	logFile    string
	logLevel   string

	alpha     float64
	beta      float64
	delta     float64
	gamma     float64
	prey      float64
	predators float64
	width     int
	height    int
)

// main registers the commands and runs the interactive view when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "predprey",
		Short:         "interactive Lotka-Volterra predator-prey explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", integrators.DefaultName, "integrator (euler, rk4, rk45)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "integrate once and print both plots",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "prey growth rate")
	plotCmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "predation rate")
	plotCmd.Flags().Float64Var(&delta, "delta", config.DefaultDelta, "predator growth per prey eaten")
	plotCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "predator death rate")
	plotCmd.Flags().Float64Var(&prey, "prey", config.DefaultPrey, "initial prey population")
	plotCmd.Flags().Float64Var(&predators, "predators", config.DefaultPredators, "initial predator population")
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width in columns")
	plotCmd.Flags().IntVar(&height, "height", 15, "plot height in rows")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "predprey", version)
		},
	}

	rootCmd.AddCommand(plotCmd, presetsCmd, configCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file, the environment, the preset
// and the persistent flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Solver.Integrator = integrator
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = logFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level, true)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("starting interactive view", "preset", preset, "integrator", cfg.Solver.Integrator, "version", version)

	m, err := viz.NewModel(cfg, log)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info("exited")
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flagTargets := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"alpha", &cfg.Params.Alpha, alpha},
		{"beta", &cfg.Params.Beta, beta},
		{"delta", &cfg.Params.Delta, delta},
		{"gamma", &cfg.Params.Gamma, gamma},
		{"prey", &cfg.InitState.Prey, prey},
		{"predators", &cfg.InitState.Predators, predators},
	}
	for _, f := range flagTargets {
		if cmd.Flags().Changed(f.name) {
			*f.dst = f.val
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level, false)
	if err != nil {
		return err
	}
	defer closeLog()

	integ, err := integrators.New(cfg.Solver.Integrator)
	if err != nil {
		return err
	}

	dyn := cfg.GetModel()
	s := sim.New(dyn, integ)
	for _, m := range metrics.Default(dyn) {
		s.AddMetric(m)
	}

	start := time.Now()
	tr, err := s.Run(context.Background(), cfg.GetInitState(), cfg.GetGrid(), cfg.GetSolver())
	if err != nil {
		return fmt.Errorf("integrate: %w", err)
	}
	log.Debug("integrated", "params", dyn.GetParams(), "steps", tr.StepsTaken, "rejected", tr.Rejected, "took", time.Since(start))
	if tr.Diverged() {
		log.Warn("trajectory diverged", "params", dyn.GetParams())
	}

	theme := viz.GetTheme(cfg.UI.Theme)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.TimeSeriesPlot(tr, width, height, theme))
	fmt.Fprintln(out)

	portrait := analysis.FromTrajectory(tr, 0, 1)
	if ascii := analysis.PhasePortraitToASCII(portrait, width, height); ascii != "" {
		minX, maxX, minY, maxY := portrait.Bounds(0.1)
		fmt.Fprintf(out, "%s (predators %.4g..%.4g vs prey %.4g..%.4g)\n", viz.PhaseCaption, minY, maxY, minX, maxX)
		fmt.Fprint(out, ascii)
	}
	fmt.Fprintln(out)

	printSummary(out, dyn, tr, cfg.GetGrid())
	return nil
}

func printSummary(out io.Writer, dyn *physics.LotkaVolterra, tr *sim.Trajectory, grid sim.Grid) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if eq, ok := dyn.Equilibrium(); ok {
		fmt.Fprintf(w, "equilibrium\t(%.4g, %.4g)\n", eq[0], eq[1])
	}
	fmt.Fprintf(w, "linear period\t%.4g\n", dyn.LinearPeriod())
	if p, ok := analysis.DominantPeriod(tr.Column(0), grid[1]-grid[0]); ok {
		fmt.Fprintf(w, "observed period\t%.4g\n", p)
	}
	for _, name := range []string{"energy_drift", "stability", "peak_prey", "peak_predators"} {
		if v, ok := tr.Metrics[name]; ok {
			fmt.Fprintf(w, "%s\t%.4g\n", name, v)
		}
	}
	fmt.Fprintf(w, "steps\t%d (%d rejected)\n", tr.StepsTaken, tr.Rejected)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tALPHA\tBETA\tDELTA\tGAMMA\tPREY\tPREDATORS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%s\n", name,
			cfg.Params.Alpha, cfg.Params.Beta, cfg.Params.Delta, cfg.Params.Gamma,
			cfg.InitState.Prey, cfg.InitState.Predators, config.Presets[name].Description)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "predprey.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	log, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level, false)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	log.Info("wrote config", "path", path)
	return nil
}
