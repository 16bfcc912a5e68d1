package control

import (
	"math/rand"
	"time"

	"github.com/golang/geo/r2"
	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/physics"
)

type Controller struct {
	world *physics.World
	spawn config.SpawnConfig
	rng   *rand.Rand
}

// New returns a controller for w. A zero seed draws one from the clock.
func New(w *physics.World, spawn config.SpawnConfig, seed int64) *Controller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Controller{
		world: w,
		spawn: spawn,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (c *Controller) World() *physics.World { return c.world }

// Populate seeds the world with the configured initial marbles and obstacles.
func (c *Controller) Populate() {
	for i := 0; i < c.spawn.Obstacles; i++ {
		c.SpawnObstacle()
	}
	for i := 0; i < c.spawn.Bodies; i++ {
		c.SpawnBody()
	}
}

// randomPlacement draws a radius in [min, max) and a center that keeps the
// whole circle inside the bounds.
func (c *Controller) randomPlacement() (r2.Point, float64) {
	s := c.world.Settings()
	radius := c.spawn.MinRadius + c.rng.Float64()*(c.spawn.MaxRadius-c.spawn.MinRadius)
	pos := r2.Point{
		X: c.rng.Float64()*(s.Width-2*radius) + radius,
		Y: c.rng.Float64()*(s.Height-2*radius) + radius,
	}
	return pos, radius
}

func (c *Controller) SpawnBody() *physics.Body {
	pos, radius := c.randomPlacement()
	return c.world.AddBody(pos, radius)
}

func (c *Controller) SpawnObstacle() *physics.Body {
	pos, radius := c.randomPlacement()
	return c.world.AddObstacle(pos, radius)
}

// SpawnBodyAt places a marble at pos. A non-positive radius draws a random one.
func (c *Controller) SpawnBodyAt(pos r2.Point, radius float64) *physics.Body {
	if radius <= 0 {
		_, radius = c.randomPlacement()
	}
	return c.world.AddBody(pos, radius)
}

func (c *Controller) SpawnObstacleAt(pos r2.Point, radius float64) *physics.Body {
	if radius <= 0 {
		_, radius = c.randomPlacement()
	}
	return c.world.AddObstacle(pos, radius)
}

func (c *Controller) DeleteLastBody() bool     { return c.world.RemoveLastBody() }
func (c *Controller) DeleteLastObstacle() bool { return c.world.RemoveLastObstacle() }

// ToggleGravity flips gravity and returns the new state.
func (c *Controller) ToggleGravity() bool {
	on := !c.world.GravityEnabled()
	c.world.SetGravityEnabled(on)
	return on
}

func (c *Controller) TogglePause() bool { return c.world.TogglePause() }

// PointerDown starts dragging the first marble under p, if any.
func (c *Controller) PointerDown(p r2.Point) bool {
	return c.world.BeginDrag(p) != nil
}

func (c *Controller) PointerMove(p r2.Point) {
	if b := c.world.Dragged(); b != nil {
		c.world.UpdateDrag(b, p)
	}
}

func (c *Controller) PointerUp() {
	if b := c.world.Dragged(); b != nil {
		c.world.EndDrag(b)
	}
}
