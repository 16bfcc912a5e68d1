package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Body is a circle in the world. Static bodies are obstacles: they never move
// and never take an impulse, but dynamic bodies still collide with them.
type Body struct {
	Pos      r2.Point
	Vel      r2.Point
	Radius   float64
	Static   bool
	Dragging bool
}

func NewBody(pos r2.Point, radius float64) *Body {
	return &Body{Pos: pos, Radius: clampRadius(radius)}
}

func NewObstacle(pos r2.Point, radius float64) *Body {
	return &Body{Pos: pos, Radius: clampRadius(radius), Static: true}
}

func clampRadius(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return MinRadius
	}
	return r
}

// Mass is proportional to the radius.
func (b *Body) Mass() float64 { return b.Radius }

// Free reports whether the body is moved by integration and impulses.
func (b *Body) Free() bool { return !b.Static && !b.Dragging }

// Integrate advances the body by one frame and keeps it inside the bounds.
func (b *Body) Integrate(s Settings, gravityOn bool) {
	if !b.Free() {
		return
	}
	if gravityOn {
		b.Vel.Y += s.Gravity
	} else {
		b.Vel.Y *= s.FloatDamping
	}
	b.Pos = b.Pos.Add(b.Vel)
	b.ResolveWalls(s.Bounds(), s.Elasticity)
}

// ResolveWalls clamps the body tangent to any wall its edge has crossed and
// reflects the matching velocity component scaled by elasticity. Both axes
// are checked, so a corner hit bounces on both in the same frame.
func (b *Body) ResolveWalls(bounds r2.Rect, elasticity float64) {
	if b.Static {
		return
	}
	if b.Pos.X-b.Radius < bounds.X.Lo {
		b.Pos.X = bounds.X.Lo + b.Radius
		b.Vel.X *= -elasticity
	} else if b.Pos.X+b.Radius > bounds.X.Hi {
		b.Pos.X = bounds.X.Hi - b.Radius
		b.Vel.X *= -elasticity
	}

	if b.Pos.Y-b.Radius < bounds.Y.Lo {
		b.Pos.Y = bounds.Y.Lo + b.Radius
		b.Vel.Y *= -elasticity
	} else if b.Pos.Y+b.Radius > bounds.Y.Hi {
		b.Pos.Y = bounds.Y.Hi - b.Radius
		b.Vel.Y *= -elasticity
	}
}

// Contains reports whether p lies strictly inside the circle.
func (b *Body) Contains(p r2.Point) bool {
	return p.Sub(b.Pos).Norm() < b.Radius
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass() * b.Vel.Dot(b.Vel)
}

func (b *Body) Momentum() r2.Point {
	return b.Vel.Mul(b.Mass())
}
