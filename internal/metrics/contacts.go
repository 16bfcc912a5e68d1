package metrics

import (
	"math"

	"github.com/san-kum/marblebox/internal/physics"
	"github.com/san-kum/marblebox/internal/sim"
)

// Contacts is the mean number of overlapping pairs found per step.
type Contacts struct {
	name    string
	sum     int
	samples int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(w *physics.World) {
	c.sum += w.Contacts()
	c.samples++
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *Contacts) Reset() {
	c.sum = 0
	c.samples = 0
}

// Penetration is the deepest overlap left between any two bodies after a
// step. Obstacle contacts only recover half the overlap per frame, so this
// is rarely exactly zero in crowded scenes.
type Penetration struct {
	name string
	max  float64
}

func NewPenetration() *Penetration {
	return &Penetration{name: "penetration_max"}
}

func (p *Penetration) Name() string { return p.name }

func (p *Penetration) Observe(w *physics.World) {
	p.max = math.Max(p.max, MaxOverlap(w.All()))
}

func (p *Penetration) Value() float64 { return p.max }
func (p *Penetration) Reset()         { p.max = 0 }

// MaxOverlap returns the deepest pairwise interpenetration in bodies.
func MaxOverlap(bodies []*physics.Body) float64 {
	deepest := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Static && b.Static {
				continue
			}
			depth := a.Radius + b.Radius - b.Pos.Sub(a.Pos).Norm()
			deepest = math.Max(deepest, depth)
		}
	}
	return deepest
}

// Default returns the metric set used by the CLI.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewMomentum(),
		NewContacts(),
		NewPenetration(),
		NewStability(EscapeTolerance),
	}
}
