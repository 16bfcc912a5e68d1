package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/marblebox/internal/config"
)

func TestGridSearchVisitsEveryPoint(t *testing.T) {
	cfg := config.GetPreset("default")
	cfg.Seed = 3
	cfg.Spawn.Bodies = 6

	g := NewGridSearch(
		[]string{config.ParamElasticity, config.ParamGravity},
		[][]float64{{0.5, 0.9}, {0.25, 0.5, 1.0}},
	)
	best, trials, err := g.Search(context.Background(), cfg, 50, "energy")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 6 {
		t.Fatalf("trials = %d, want 6", len(trials))
	}
	for _, tr := range trials {
		if tr.Value < best.Value {
			t.Errorf("trial %v beats best %v", tr, best)
		}
	}
	if _, ok := best.Params[config.ParamGravity]; !ok {
		t.Errorf("best params incomplete: %v", best.Params)
	}
}

func TestGridSearchSkipsInvalid(t *testing.T) {
	cfg := config.GetPreset("default")
	cfg.Seed = 1
	cfg.Spawn.Bodies = 2

	g := NewGridSearch([]string{config.ParamElasticity}, [][]float64{{2.0, 0.8}})
	best, trials, err := g.Search(context.Background(), cfg, 10, "energy")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 1 || best.Params[config.ParamElasticity] != 0.8 {
		t.Errorf("expected only elasticity 0.8 to run, got %v", trials)
	}

	g = NewGridSearch([]string{config.ParamElasticity}, [][]float64{{2.0}})
	if _, _, err := g.Search(context.Background(), cfg, 10, "energy"); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestGridSearchErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 1

	g := NewGridSearch([]string{"wind"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), cfg, 10, "energy"); !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	g = NewGridSearch([]string{config.ParamGravity}, [][]float64{{0.5}})
	if _, _, err := g.Search(context.Background(), cfg, 10, "nope"); err == nil {
		t.Error("expected error for unknown metric")
	}

	g = NewGridSearch([]string{config.ParamGravity}, nil)
	if _, _, err := g.Search(context.Background(), cfg, 10, "energy"); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}
