package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/control"
	"github.com/san-kum/marblebox/internal/metrics"
	"github.com/san-kum/marblebox/internal/sim"
	"gopkg.in/yaml.v3"
)

// Script is a timeline of input events replayed against a world.
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep fires Command at the start of tick Frame, before that tick's step.
type ScriptStep struct {
	Frame           uint64 `yaml:"frame"`
	control.Command `yaml:",inline"`
}

// LoadScript loads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	sort.SliceStable(script.Steps, func(i, j int) bool {
		return script.Steps[i].Frame < script.Steps[j].Frame
	})
	return &script, nil
}

// Player feeds a script into a controller; it implements sim.Input.
type Player struct {
	script *Script
	ctl    *control.Controller
	next   int
	logger *log.Logger
}

func NewPlayer(script *Script, ctl *control.Controller) *Player {
	return &Player{script: script, ctl: ctl, logger: log.New(io.Discard)}
}

func (p *Player) SetLogger(l *log.Logger) { p.logger = l }

// Done reports whether every step has been applied.
func (p *Player) Done() bool { return p.next >= len(p.script.Steps) }

func (p *Player) Poll(tick uint64) error {
	for p.next < len(p.script.Steps) && p.script.Steps[p.next].Frame <= tick {
		step := p.script.Steps[p.next]
		if err := p.ctl.Apply(step.Command); err != nil {
			return fmt.Errorf("script %q step %d: %w", p.script.Name, p.next+1, err)
		}
		p.logger.Debug("applied command", "tick", tick, "cmd", step.Command)
		p.next++
	}
	return nil
}

// RunScript populates a world from cfg, replays script and returns the result.
func RunScript(ctx context.Context, cfg *config.Config, script *Script, r sim.Renderer, logger *log.Logger) (*sim.Result, error) {
	w := cfg.NewWorld()
	ctl := control.New(w, cfg.Spawn, cfg.Seed)
	ctl.Populate()

	s := sim.New(w, r)
	if logger != nil {
		s.AddObserver(sim.NewContactLogger(logger))
	}
	if script != nil {
		p := NewPlayer(script, ctl)
		if logger != nil {
			p.SetLogger(logger)
		}
		s.AddInput(p)
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	res, err := s.Run(ctx, sim.Config{Frames: cfg.Loop.Frames})
	if res != nil {
		res.Seed = cfg.Seed
	}
	return res, err
}

// ParameterSweep runs one seeded scene across a range of a world parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Seed      int64
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	FinalEnergy float64
	MeanEnergy  float64
	Contacts    int
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		if i == sweep.NumSteps-1 {
			paramVal = sweep.ParamMax
		}
		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		energy := metrics.NewEnergy()
		res, err := sim.RunSeeded(ctx, cfg, sweep.Seed, sweep.Frames, []sim.Metric{energy})
		if err != nil {
			return nil, err
		}

		final := 0.0
		if len(res.Energy) > 0 {
			final = res.Energy[len(res.Energy)-1]
		}
		results = append(results, SweepResult{
			ParamValue:  paramVal,
			FinalEnergy: final,
			MeanEnergy:  res.Metrics[energy.Name()],
			Contacts:    res.Contacts,
		})
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	NumTrials int
	Frames    int
	Seed      int64
}

// MonteCarloResult holds the outcome of one seeded trial.
type MonteCarloResult struct {
	TrialID   int
	Seed      int64
	Stability float64
	Stable    bool // every frame finite and inside bounds
}

// RunMonteCarlo executes seeded trials in parallel and checks each stays bounded.
func RunMonteCarlo(ctx context.Context, base *config.Config, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	ens := sim.NewEnsemble(base, mc.NumTrials, mc.Seed).WithMetrics(func() []sim.Metric {
		return []sim.Metric{metrics.NewStability(metrics.EscapeTolerance)}
	})
	runs, err := ens.Run(ctx, mc.Frames)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		st := r.Metrics["stability"]
		results[i] = MonteCarloResult{
			TrialID:   i,
			Seed:      r.Seed,
			Stability: st,
			Stable:    st == 1.0,
		}
	}
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
