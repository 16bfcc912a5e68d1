package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// coincident is the center distance below which two bodies are treated as
// sharing a center; the collision normal then falls back to +X.
const coincident = 1e-9

var fallbackNormal = r2.Point{X: 1, Y: 0}

// Overlapping reports whether two circles interpenetrate.
func Overlapping(a, b *Body) bool {
	return b.Pos.Sub(a.Pos).Norm() < a.Radius+b.Radius
}

// Collide handles one ordered pair: if the circles overlap it pushes them
// apart along the line of centers and then resolves their velocities.
// It reports whether the pair was overlapping.
func Collide(a, b *Body, elasticity float64) bool {
	if !Overlapping(a, b) {
		return false
	}
	Separate(a, b)
	Resolve(a, b, elasticity)
	return true
}

// Separate displaces each non-static body by half the overlap, away from
// the other. Static bodies never move, so a dynamic body touching an
// obstacle only recovers half the overlap per call.
func Separate(a, b *Body) {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Norm()
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return
	}

	normal := fallbackNormal
	if dist > coincident {
		normal = delta.Mul(1 / dist)
	}
	offset := normal.Mul((minDist - dist) / 2)

	if !a.Static {
		a.Pos = a.Pos.Sub(offset)
	}
	if !b.Static {
		b.Pos = b.Pos.Add(offset)
	}
}

// Resolve applies a 1D elastic collision along the collision normal when
// the bodies are closing. Results are scaled by elasticity and written only
// to free bodies: static and dragged bodies keep their velocity.
func Resolve(a, b *Body, elasticity float64) bool {
	delta := b.Pos.Sub(a.Pos)
	if delta.Dot(a.Vel.Sub(b.Vel)) < 0 {
		return false
	}

	angle := 0.0
	if delta.Norm() > coincident {
		angle = -math.Atan2(delta.Y, delta.X)
	}

	m1, m2 := a.Mass(), b.Mass()
	u1 := rotate(a.Vel, angle)
	u2 := rotate(b.Vel, angle)

	v1 := r2.Point{X: u1.X*(m1-m2)/(m1+m2) + u2.X*2*m2/(m1+m2), Y: u1.Y}
	v2 := r2.Point{X: u2.X*(m2-m1)/(m1+m2) + u1.X*2*m1/(m1+m2), Y: u2.Y}

	if a.Free() {
		a.Vel = rotate(v1, -angle).Mul(elasticity)
	}
	if b.Free() {
		b.Vel = rotate(v2, -angle).Mul(elasticity)
	}
	return true
}

func rotate(v r2.Point, angle float64) r2.Point {
	sin, cos := math.Sincos(angle)
	return r2.Point{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
