package sim

import (
	"errors"

	"github.com/san-kum/marblebox/internal/physics"
)

var ErrInvalidFrames = errors.New("sim: frame count must be positive")

// Frame is what a renderer sees after a step: copies of the marbles
// followed by the obstacles, plus the flags shown in the info line.
type Frame struct {
	Number    uint64
	Bodies    []physics.Body
	Marbles   int
	Obstacles int
	GravityOn bool
	Paused    bool
	Energy    float64
}

// Renderer draws one frame. It must not retain Bodies past the call.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(f Frame)

func (fn RendererFunc) Render(f Frame) { fn(f) }

// Input is polled once per tick, before the step, and may mutate the world.
type Input interface {
	Poll(tick uint64) error
}

type Metric interface {
	Name() string
	Observe(w *physics.World)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(tick uint64, w *physics.World)
}

type Config struct {
	Frames int
	FPS    int
}

type Result struct {
	Seed     int64
	Ticks    int
	Steps    int
	Metrics  map[string]float64
	Energy   []float64
	Contacts int
}

// Snapshot copies the render view of w.
func Snapshot(w *physics.World) Frame {
	all := w.All()
	bodies := make([]physics.Body, len(all))
	for i, b := range all {
		bodies[i] = *b
	}
	marbles, obstacles := w.Len()
	return Frame{
		Number:    w.Frames(),
		Bodies:    bodies,
		Marbles:   marbles,
		Obstacles: obstacles,
		GravityOn: w.GravityEnabled(),
		Paused:    w.Paused(),
		Energy:    w.KineticEnergy(),
	}
}
