// Package viz provides the terminal sandbox.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the running sandbox, stepping the world once per tick
//   - [Canvas]: Braille-based pixel canvas with per-cell ink colors
//   - a preset picker that launches [Model]
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	b     - Spawn a marble
//	o     - Spawn an obstacle
//	d     - Delete the newest marble
//	D, f  - Delete the newest obstacle
//	g     - Toggle gravity
//	Space - Pause/Resume simulation
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Mouse
//
// Pressing the left button over a marble picks it up; it follows the
// pointer until release and then resumes with the velocity it had when
// it was picked up.
package viz
