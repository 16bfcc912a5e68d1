package sim

import (
	"context"

	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/control"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs one configuration with consecutive seeds, each world on its
// own goroutine. Worlds share nothing, so no locking is involved.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory called once per run; metrics hold state, so
// runs must not share instances.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			res, err := RunSeeded(ctx, e.cfg, seed, frames, e.metricsFor())
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Ensemble) metricsFor() []Metric {
	if e.metrics == nil {
		return nil
	}
	return e.metrics()
}

// RunSeeded builds a populated world for cfg with the given seed and runs
// it headless for frames ticks.
func RunSeeded(ctx context.Context, cfg *config.Config, seed int64, frames int, metrics []Metric) (*Result, error) {
	w := cfg.NewWorld()
	ctl := control.New(w, cfg.Spawn, seed)
	ctl.Populate()

	s := New(w, nil)
	for _, m := range metrics {
		s.AddMetric(m)
	}
	res, err := s.Run(ctx, Config{Frames: frames})
	if res != nil {
		res.Seed = seed
	}
	return res, err
}
