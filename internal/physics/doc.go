// Package physics implements the marble sandbox core: circular bodies that
// fall under optional gravity, bounce off the enclosing walls and collide
// elastically with each other and with static obstacles.
//
//   - [Body]: a marble or an obstacle, owning its integration and wall bounce
//   - [World]: the ordered body/obstacle collections and the per-frame [World.Step]
//   - [Collide]: overlap correction followed by impulse resolution for one pair
//
// Units are world pixels and frames: velocities are distance per frame and
// gravity is added to the vertical velocity once per step.
//
// # Example
//
//	w := physics.NewWorld(physics.DefaultSettings())
//	w.AddBody(r2.Point{X: 400, Y: 100}, 10)
//	w.AddObstacle(r2.Point{X: 400, Y: 300}, 15)
//	for i := 0; i < 120; i++ {
//	    w.Step()
//	}
//
// # Thread Safety
//
// A World is not safe for concurrent use. Callers serialise every mutation
// with the frame loop that calls Step (see package sim).
package physics
