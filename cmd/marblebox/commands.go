package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/marblebox/internal/automation"
	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/export"
	"github.com/san-kum/marblebox/internal/metrics"
	"github.com/san-kum/marblebox/internal/optim"
	"github.com/san-kum/marblebox/internal/sim"
	"github.com/san-kum/marblebox/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var script *automation.Script
	if scriptFile != "" {
		script, err = automation.LoadScript(scriptFile)
		if err != nil {
			return err
		}
		logger.Info("loaded script", "name", script.Name, "steps", len(script.Steps))
	}

	var renderer sim.Renderer
	var svg *export.SVGRenderer
	if svgFile != "" {
		svg = export.NewSVGRenderer(cfg.World.Width, cfg.World.Height, viz.GetTheme(cfg.Theme))
		renderer = svg
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running", "scene", sceneName(), "frames", cfg.Loop.Frames, "seed", cfg.Seed)
	start := time.Now()
	result, err := automation.RunScript(ctx, cfg, script, renderer, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "scene\t%s\n", sceneName())
	fmt.Fprintf(w, "seed\t%d\n", result.Seed)
	fmt.Fprintf(w, "ticks\t%d\n", result.Ticks)
	fmt.Fprintf(w, "steps\t%d\n", result.Steps)
	fmt.Fprintf(w, "contacts\t%d\n", result.Contacts)
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %.6f\n", name, result.Metrics[name])
	}

	if len(result.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy per frame"),
		))
	}

	if svg != nil {
		if err := svg.SaveSVG(svgFile); err != nil {
			return err
		}
		logger.Info("wrote final frame", "path", svgFile)
	}
	if energySVG != "" {
		plot := export.SeriesToSVG(result.Energy, 800, 300, string(viz.GetTheme(cfg.Theme).Marble))
		if plot == "" {
			return fmt.Errorf("energy trace needs at least 2 frames")
		}
		if err := os.WriteFile(energySVG, []byte(plot), 0644); err != nil {
			return fmt.Errorf("write energy svg: %w", err)
		}
		logger.Info("wrote energy trace", "path", energySVG)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s: %d runs x %d frames\n\n", sceneName(), numRuns, cfg.Loop.Frames)
	start := time.Now()
	results, err := sim.NewEnsemble(cfg, numRuns, seedStart).WithMetrics(metrics.Default).Run(ctx, cfg.Loop.Frames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tENERGY\tCONTACTS\tPENETRATION\tSTABLE")
	total := 0
	for _, r := range results {
		total += r.Steps
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%d\t%.4f\t%.2f\n",
			r.Seed,
			r.Steps,
			r.Metrics["energy"],
			r.Contacts,
			r.Metrics["penetration_max"],
			r.Metrics["stability"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d frames in %v (%.0f frames/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, cfg, &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    cfg.Loop.Frames,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL KE\tMEAN KE\tCONTACTS\n", sweepParam)
	final := make([]float64, len(results))
	for i, r := range results {
		final[i] = r.FinalEnergy
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%d\n", r.ParamValue, r.FinalEnergy, r.MeanEnergy, r.Contacts)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(final) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(final,
			asciigraph.Height(8),
			asciigraph.Caption(fmt.Sprintf("final kinetic energy vs %s", sweepParam)),
		))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numTrials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", numTrials)
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, cfg, &automation.MonteCarloConfig{
		NumTrials: numTrials,
		Frames:    cfg.Loop.Frames,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("%s: %d trials x %d frames\n", sceneName(), numTrials, cfg.Loop.Frames)
	fmt.Printf("  stable:   %d\n", stable)
	fmt.Printf("  unstable: %d\n", unstable)
	for _, r := range results {
		if !r.Stable {
			fmt.Printf("  seed %d escaped or went non-finite (%.1f%% of frames clean)\n", r.Seed, r.Stability*100)
		}
	}
	if unstable > 0 {
		return fmt.Errorf("%d of %d trials unstable", unstable, numTrials)
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	var names []string
	var ranges [][]float64
	for _, p := range []struct {
		name   string
		values []float64
	}{
		{config.ParamElasticity, tuneElasticity},
		{config.ParamGravity, tuneGravity},
		{config.ParamDamping, tuneDamping},
	} {
		if len(p.values) > 0 {
			names = append(names, p.name)
			ranges = append(ranges, p.values)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to tune: give at least one of --elasticity, --gravity, --damping")
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, trials, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg, cfg.Loop.Frames, tuneMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t", n)
	}
	fmt.Fprintln(w, tuneMetric)
	for _, t := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%.3f\t", t.Params[n])
		}
		fmt.Fprintf(w, "%.6f\n", t.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.6f at", tuneMetric, best.Value)
	for _, n := range names {
		fmt.Printf(" %s=%g", n, best.Params[n])
	}
	fmt.Println()
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMARBLES\tOBSTACLES\tGRAVITY\tELASTICITY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		gravity := "off"
		if p.World.GravityEnabled {
			gravity = fmt.Sprintf("%.2f", p.World.Gravity)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.2f\n", name, p.Spawn.Bodies, p.Spawn.Obstacles, gravity, p.World.Elasticity)
	}
	return w.Flush()
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
