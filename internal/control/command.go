package control

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
)

var ErrUnknownAction = errors.New("control: unknown action")

type Action string

const (
	SpawnBody      Action = "spawn_body"
	SpawnObstacle  Action = "spawn_obstacle"
	DeleteBody     Action = "delete_body"
	DeleteObstacle Action = "delete_obstacle"
	ToggleGravity  Action = "toggle_gravity"
	TogglePause    Action = "toggle_pause"
	PointerDown    Action = "pointer_down"
	PointerMove    Action = "pointer_move"
	PointerUp      Action = "pointer_up"
)

// Command is one input event. Spawn commands use X/Y/Radius when Placed is
// set and fall back to random placement otherwise.
type Command struct {
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Placed bool    `yaml:"placed,omitempty"`
}

func (cmd Command) Point() r2.Point { return r2.Point{X: cmd.X, Y: cmd.Y} }

func (cmd Command) String() string {
	switch cmd.Action {
	case PointerDown, PointerMove:
		return fmt.Sprintf("%s(%.1f, %.1f)", cmd.Action, cmd.X, cmd.Y)
	case SpawnBody, SpawnObstacle:
		if cmd.Placed {
			return fmt.Sprintf("%s(%.1f, %.1f, r=%.1f)", cmd.Action, cmd.X, cmd.Y, cmd.Radius)
		}
	}
	return string(cmd.Action)
}

// Apply runs cmd against the world.
func (c *Controller) Apply(cmd Command) error {
	switch cmd.Action {
	case SpawnBody:
		if cmd.Placed {
			c.SpawnBodyAt(cmd.Point(), cmd.Radius)
		} else {
			c.SpawnBody()
		}
	case SpawnObstacle:
		if cmd.Placed {
			c.SpawnObstacleAt(cmd.Point(), cmd.Radius)
		} else {
			c.SpawnObstacle()
		}
	case DeleteBody:
		c.DeleteLastBody()
	case DeleteObstacle:
		c.DeleteLastObstacle()
	case ToggleGravity:
		c.ToggleGravity()
	case TogglePause:
		c.TogglePause()
	case PointerDown:
		c.PointerDown(cmd.Point())
	case PointerMove:
		c.PointerMove(cmd.Point())
	case PointerUp:
		c.PointerUp()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	return nil
}
