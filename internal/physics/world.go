package physics

import "github.com/golang/geo/r2"

// World owns the marbles and obstacles, both in insertion order, and the
// gravity/pause flags mutated by input between frames.
type World struct {
	settings  Settings
	bodies    []*Body
	obstacles []*Body

	gravityOn bool
	paused    bool
	dragged   *Body

	frames   uint64
	contacts int
}

func NewWorld(s Settings) *World {
	return &World{
		settings:  s,
		bodies:    make([]*Body, 0),
		obstacles: make([]*Body, 0),
		gravityOn: true,
	}
}

func (w *World) Settings() Settings { return w.settings }
func (w *World) Bounds() r2.Rect    { return w.settings.Bounds() }

// Step advances the world by one frame: every body integrates, then one
// collision pass runs over bodies followed by obstacles.
func (w *World) Step() {
	for _, b := range w.bodies {
		b.Integrate(w.settings, w.gravityOn)
	}
	for _, o := range w.obstacles {
		o.Integrate(w.settings, w.gravityOn)
	}
	w.contacts = w.collide()
	w.frames++
}

// collide checks every unordered pair once, O(n²).
func (w *World) collide() int {
	all := w.All()
	contacts := 0
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if Collide(all[i], all[j], w.settings.Elasticity) {
				contacts++
			}
		}
	}
	return contacts
}

func (w *World) AddBody(pos r2.Point, radius float64) *Body {
	b := NewBody(pos, radius)
	w.bodies = append(w.bodies, b)
	return b
}

func (w *World) AddObstacle(pos r2.Point, radius float64) *Body {
	o := NewObstacle(pos, radius)
	w.obstacles = append(w.obstacles, o)
	return o
}

// RemoveLastBody pops the most recently added marble. It is a no-op on an
// empty world and reports whether a body was removed.
func (w *World) RemoveLastBody() bool {
	n := len(w.bodies)
	if n == 0 {
		return false
	}
	last := w.bodies[n-1]
	w.bodies[n-1] = nil
	w.bodies = w.bodies[:n-1]
	if last == w.dragged {
		w.EndDrag(last)
	}
	return true
}

func (w *World) RemoveLastObstacle() bool {
	n := len(w.obstacles)
	if n == 0 {
		return false
	}
	w.obstacles[n-1] = nil
	w.obstacles = w.obstacles[:n-1]
	return true
}

func (w *World) GravityEnabled() bool         { return w.gravityOn }
func (w *World) SetGravityEnabled(on bool)    { w.gravityOn = on }
func (w *World) Paused() bool                 { return w.paused }
func (w *World) SetPaused(p bool)             { w.paused = p }
func (w *World) TogglePause() bool            { w.paused = !w.paused; return w.paused }
func (w *World) Dragged() *Body               { return w.dragged }
func (w *World) Frames() uint64               { return w.frames }
func (w *World) Contacts() int                { return w.contacts }
func (w *World) Bodies() []*Body              { return w.bodies }
func (w *World) Obstacles() []*Body           { return w.obstacles }
func (w *World) Len() (bodies, obstacles int) { return len(w.bodies), len(w.obstacles) }

// All returns marbles followed by obstacles in a fresh slice.
func (w *World) All() []*Body {
	all := make([]*Body, 0, len(w.bodies)+len(w.obstacles))
	all = append(all, w.bodies...)
	return append(all, w.obstacles...)
}

// BeginDrag picks the first marble, in insertion order, whose center lies
// strictly within its radius of p. Obstacles cannot be dragged. A hit
// releases any active drag first, so at most one body is ever dragged; a
// miss changes nothing.
func (w *World) BeginDrag(p r2.Point) *Body {
	for _, b := range w.bodies {
		if b.Contains(p) {
			if w.dragged != nil {
				w.EndDrag(w.dragged)
			}
			b.Dragging = true
			w.dragged = b
			return b
		}
	}
	return nil
}

// UpdateDrag moves a dragged body directly, bypassing physics.
func (w *World) UpdateDrag(b *Body, p r2.Point) {
	if b == nil || !b.Dragging {
		return
	}
	b.Pos = p
}

// EndDrag releases b. Its velocity stays whatever it was when the drag began.
func (w *World) EndDrag(b *Body) {
	if b == nil {
		return
	}
	b.Dragging = false
	if w.dragged == b {
		w.dragged = nil
	}
}

func (w *World) KineticEnergy() float64 {
	e := 0.0
	for _, b := range w.bodies {
		e += b.KineticEnergy()
	}
	return e
}

func (w *World) Momentum() r2.Point {
	var p r2.Point
	for _, b := range w.bodies {
		p = p.Add(b.Momentum())
	}
	return p
}
