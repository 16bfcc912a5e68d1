package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/metrics"
	"github.com/san-kum/marblebox/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no valid parameter combination")

// GridSearch tries every combination of world parameter values on one
// seeded scene and keeps the one with the lowest metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// Search runs base with each grid point for frames ticks. Points that fail
// validation are skipped, not fatal.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	frames int,
	metricName string,
) (best Trial, trials []Trial, err error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best.Value = math.Inf(1)
	err = g.searchRecursive(ctx, 0, make(map[string]float64), base, frames, metricName, &best, &trials)
	if err != nil {
		return Trial{}, trials, err
	}
	if best.Params == nil {
		return Trial{}, trials, ErrNoCandidate
	}
	return best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	frames int,
	metricName string,
	best *Trial,
	trials *[]Trial,
) error {
	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.SetParam(k, v); err != nil {
				return err
			}
		}
		if cfg.Validate() != nil {
			return nil
		}

		result, err := sim.RunSeeded(ctx, cfg, cfg.Seed, frames, metrics.Default())
		if err != nil {
			return err
		}
		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %q", metricName)
		}

		t := Trial{Params: make(map[string]float64, len(current)), Value: val}
		for k, v := range current {
			t.Params[k] = v
		}
		*trials = append(*trials, t)
		if val < best.Value {
			*best = t
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, frames, metricName, best, trials); err != nil {
			return err
		}
	}
	return nil
}
