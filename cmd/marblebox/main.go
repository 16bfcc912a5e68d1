package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/control"
	"github.com/san-kum/marblebox/internal/gui"
	"github.com/san-kum/marblebox/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	theme      string
	logLevel   string
	fps        int
	frames     int
	// run
	scriptFile string
	svgFile    string
	energySVG  string
	// bench / montecarlo
	numRuns   int
	numTrials int
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// tune
	tuneElasticity []float64
	tuneGravity    []float64
	tuneDamping    []float64
	tuneMetric     string
	// config
	outFile string
)

// main registers commands and flags. With no subcommand it opens the
// terminal sandbox; it exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "marblebox",
		Short:         "2d marble physics sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 draws one from the clock)")
	pf.StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.IntVar(&fps, "fps", 0, "frames per second for interactive modes")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal sandbox with mouse drag",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "windowed sandbox",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step a scene headless and print a summary",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "frames to simulate (default from config)")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "input script to replay (yaml)")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final frame as SVG")
	runCmd.Flags().StringVar(&energySVG, "energy-svg", "", "write the kinetic energy trace as SVG")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run seeded copies of a scene in parallel",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeded runs")
	benchCmd.Flags().IntVar(&frames, "frames", 0, "frames per run (default from config)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep a world parameter and report energy",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "elasticity", "parameter (elasticity, gravity, float_damping)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", 0, "frames per value (default from config)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "check seeded runs stay finite and inside the walls",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&numTrials, "trials", 32, "number of trials")
	monteCarloCmd.Flags().IntVar(&frames, "frames", 0, "frames per trial (default from config)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search world parameters for the lowest metric value",
		RunE:  runTune,
	}
	tuneCmd.Flags().Float64SliceVar(&tuneElasticity, "elasticity", []float64{0.5, 0.7, 0.9, 1.0}, "elasticity values")
	tuneCmd.Flags().Float64SliceVar(&tuneGravity, "gravity", nil, "gravity values")
	tuneCmd.Flags().Float64SliceVar(&tuneDamping, "damping", nil, "float damping values")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "penetration_max", "metric to minimize")
	tuneCmd.Flags().IntVar(&frames, "frames", 0, "frames per grid point (default from config)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, benchCmd, sweepCmd, monteCarloCmd, tuneCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger writes to stderr so it never mixes with command output.
func newLogger(w io.Writer) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "marblebox",
	})
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// loadConfig resolves the preset, then the config file on top of it, then
// any flags set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if cfg.Theme != "" && !slices.Contains(viz.ThemeNames(), cfg.Theme) {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	if flags.Changed("fps") {
		cfg.Loop.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Loop.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sceneName() string {
	switch {
	case preset != "":
		return preset
	case configFile != "":
		return configFile
	}
	return "default"
}

// populate builds the seeded starting scene for cfg.
func populate(cfg *config.Config) *control.Controller {
	ctrl := control.New(cfg.NewWorld(), cfg.Spawn, cfg.Seed)
	ctrl.Populate()
	return ctrl
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	th := viz.GetTheme(cfg.Theme)

	// without a chosen scene, let the user pick one
	if preset == "" && configFile == "" {
		override := 0
		if cmd.Flags().Changed("fps") {
			override = cfg.Loop.FPS
		}
		return viz.RunInteractive(cfg.Seed, th, override)
	}
	return viz.Run(viz.NewModel(populate(cfg), sceneName(), th, cfg.Loop.FPS))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	ctrl := populate(cfg)
	bodies, obstacles := ctrl.World().Len()
	logger.Info("opening window", "scene", sceneName(), "marbles", bodies, "obstacles", obstacles)
	gui.Run(ctrl, sceneName(), cfg.Loop.FPS)
	return nil
}
