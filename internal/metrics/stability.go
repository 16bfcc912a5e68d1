package metrics

import (
	"math"

	"github.com/san-kum/marblebox/internal/physics"
)

// EscapeTolerance is how far past a wall a marble may be pushed by overlap
// correction before the frame counts as unstable. Walls are only enforced
// during integration, so crowded scenes briefly exceed the bounds.
const EscapeTolerance = 20.0

// Stability is the fraction of frames in which every marble is finite and
// inside the bounds, allowing tolerance for the residual overlap push.
type Stability struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewStability(tolerance float64) *Stability {
	return &Stability{
		name:      "stability",
		tolerance: tolerance,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(w *physics.World) {
	s.samples++
	bounds := w.Bounds()
	for _, b := range w.Bodies() {
		if !finite(b) ||
			b.Pos.X-b.Radius < bounds.X.Lo-s.tolerance || b.Pos.X+b.Radius > bounds.X.Hi+s.tolerance ||
			b.Pos.Y-b.Radius < bounds.Y.Lo-s.tolerance || b.Pos.Y+b.Radius > bounds.Y.Hi+s.tolerance {
			s.violations++
			return
		}
	}
}

func finite(b *physics.Body) bool {
	for _, v := range []float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
