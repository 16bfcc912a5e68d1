package metrics

import "github.com/san-kum/marblebox/internal/physics"

// Energy is the mean kinetic energy of the marbles over observed frames.
type Energy struct {
	name    string
	total   float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *physics.World) {
	e.total += w.KineticEnergy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// Momentum tracks the largest total momentum magnitude seen.
type Momentum struct {
	name string
	max  float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum_max"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(w *physics.World) {
	if p := w.Momentum().Norm(); p > m.max {
		m.max = p
	}
}

func (m *Momentum) Value() float64 { return m.max }
func (m *Momentum) Reset()         { m.max = 0 }
