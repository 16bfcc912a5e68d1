package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/marblebox/internal/physics"
)

// Simulator is the frame loop. Each tick polls inputs and, unless the world
// is paused, steps the world, updates metrics and observers and renders. A
// paused tick still runs inputs so the loop idles instead of stopping.
type Simulator struct {
	world     *physics.World
	renderer  Renderer
	inputs    []Input
	metrics   []Metric
	observers []Observer
	tick      uint64
}

func New(w *physics.World, r Renderer) *Simulator {
	return &Simulator{
		world:     w,
		renderer:  r,
		inputs:    make([]Input, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddInput(in Input)      { s.inputs = append(s.inputs, in) }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) World() *physics.World  { return s.world }
func (s *Simulator) Ticks() uint64          { return s.tick }

// Tick runs one frame and reports whether the world was stepped.
func (s *Simulator) Tick() (bool, error) {
	for _, in := range s.inputs {
		if err := in.Poll(s.tick); err != nil {
			return false, fmt.Errorf("tick %d: %w", s.tick, err)
		}
	}
	s.tick++

	if s.world.Paused() {
		return false, nil
	}

	s.world.Step()
	for _, m := range s.metrics {
		m.Observe(s.world)
	}
	for _, o := range s.observers {
		o.OnStep(s.tick, s.world)
	}
	if s.renderer != nil {
		s.renderer.Render(Snapshot(s.world))
	}
	return true, nil
}

// Run ticks cfg.Frames times as fast as possible.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidFrames, cfg.Frames)
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Energy:  make([]float64, 0, cfg.Frames),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		stepped, err := s.Tick()
		result.Ticks++
		if err != nil {
			return result, err
		}
		if stepped {
			result.Steps++
			result.Contacts += s.world.Contacts()
			result.Energy = append(result.Energy, s.world.KineticEnergy())
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
