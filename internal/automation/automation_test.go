package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/control"
	"github.com/san-kum/marblebox/internal/sim"
)

const dropScript = `
name: drop
description: two marbles and a peg
steps:
  - frame: 5
    action: spawn_body
    x: 400
    y: 50
    radius: 10
    placed: true
  - frame: 0
    action: spawn_obstacle
    x: 400
    y: 300
    radius: 30
    placed: true
  - frame: 10
    action: toggle_gravity
  - frame: 12
    action: delete_body
`

func TestParseScriptSortsByFrame(t *testing.T) {
	s, err := ParseScript([]byte(dropScript))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Name != "drop" || len(s.Steps) != 4 {
		t.Fatalf("unexpected script: %+v", s)
	}
	if s.Steps[0].Action != control.SpawnObstacle || s.Steps[0].Radius != 30 || !s.Steps[0].Placed {
		t.Errorf("expected obstacle first, got %+v", s.Steps[0])
	}
	for i := 1; i < len(s.Steps); i++ {
		if s.Steps[i].Frame < s.Steps[i-1].Frame {
			t.Errorf("steps not sorted at %d", i)
		}
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drop.yaml")
	if err := os.WriteFile(path, []byte(dropScript), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestPlayerAppliesStepsOnTime(t *testing.T) {
	script, err := ParseScript([]byte(dropScript))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	w := cfg.NewWorld()
	p := NewPlayer(script, control.New(w, cfg.Spawn, 1))

	var marbles []int
	s := sim.New(w, sim.RendererFunc(func(f sim.Frame) { marbles = append(marbles, f.Marbles) }))
	s.AddInput(p)

	if _, err := s.Run(context.Background(), sim.Config{Frames: 20}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !p.Done() {
		t.Error("expected all steps applied")
	}
	if marbles[4] != 0 || marbles[5] != 1 || marbles[11] != 1 || marbles[12] != 0 {
		t.Errorf("unexpected marble counts: %v", marbles)
	}
	if w.GravityEnabled() {
		t.Error("expected gravity toggled off")
	}
	if len(w.Obstacles()) != 1 {
		t.Errorf("expected 1 obstacle, got %d", len(w.Obstacles()))
	}
}

func TestPlayerRejectsUnknownAction(t *testing.T) {
	script := &Script{Name: "bad", Steps: []ScriptStep{{Command: control.Command{Action: "nope"}}}}
	cfg := config.DefaultConfig()
	p := NewPlayer(script, control.New(cfg.NewWorld(), cfg.Spawn, 1))

	if err := p.Poll(0); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunScript(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	cfg.Loop.Frames = 60
	cfg.Spawn.Bodies = 5

	script, err := ParseScript([]byte(dropScript))
	if err != nil {
		t.Fatal(err)
	}
	res, err := RunScript(context.Background(), cfg, script, nil, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Steps != 60 || res.Seed != 3 {
		t.Errorf("unexpected result: steps=%d seed=%d", res.Steps, res.Seed)
	}
	if _, ok := res.Metrics["energy"]; !ok {
		t.Error("expected default metrics in result")
	}
}

func TestRunSweep(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Spawn.Bodies = 10

	results, err := RunSweep(context.Background(), cfg, &ParameterSweep{
		ParamName: config.ParamElasticity,
		ParamMin:  0.2,
		ParamMax:  1.0,
		NumSteps:  3,
		Frames:    200,
		Seed:      11,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ParamValue != 0.2 || results[2].ParamValue != 1.0 {
		t.Errorf("unexpected parameter values: %v", results)
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	_, err := RunSweep(context.Background(), config.DefaultConfig(), &ParameterSweep{
		ParamName: "wind", NumSteps: 2, Frames: 1,
	})
	if !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	cfg := config.GetPreset("pegboard")
	results, err := RunMonteCarlo(context.Background(), cfg, &MonteCarloConfig{NumTrials: 4, Frames: 100, Seed: 1})
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	stable, unstable := MonteCarloStats(results)
	if stable+unstable != 4 {
		t.Errorf("expected 4 trials, got %d", stable+unstable)
	}
}
