package physics

import "github.com/golang/geo/r2"

const (
	DefaultWidth        = 800.0
	DefaultHeight       = 600.0
	DefaultGravity      = 0.5
	DefaultElasticity   = 0.9
	DefaultFloatDamping = 0.99

	// MinRadius replaces a non-positive or NaN radius.
	MinRadius = 0.5
)

// Settings are the world constants that do not change between frames.
type Settings struct {
	Width, Height float64
	Gravity       float64 // added to vy every frame while gravity is on
	Elasticity    float64 // restitution for walls and collisions
	FloatDamping  float64 // vy multiplier every frame while gravity is off
}

func DefaultSettings() Settings {
	return Settings{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Gravity:      DefaultGravity,
		Elasticity:   DefaultElasticity,
		FloatDamping: DefaultFloatDamping,
	}
}

// Bounds returns the simulation rectangle [0,Width]x[0,Height].
func (s Settings) Bounds() r2.Rect {
	return r2.RectFromPoints(r2.Point{}, r2.Point{X: s.Width, Y: s.Height})
}
