// Package control translates user input into world mutations.
//
// A [Controller] is the single writer for a [physics.World] between frames:
// it spawns and deletes marbles and obstacles, flips the gravity and pause
// flags and runs the pointer drag lifecycle.
//
//   - [Controller.SpawnBody], [Controller.SpawnObstacle]: random placement inside bounds
//   - [Controller.PointerDown], [Controller.PointerMove], [Controller.PointerUp]: drag
//   - [Command]: a serialisable input event, applied with [Controller.Apply]
//
// # Usage
//
//	w := cfg.NewWorld()
//	ctl := control.New(w, cfg.Spawn, cfg.Seed)
//	ctl.SpawnBody()
//	ctl.PointerDown(r2.Point{X: 120, Y: 80})
//
// Controllers must be called from the goroutine that steps the world.
package control
