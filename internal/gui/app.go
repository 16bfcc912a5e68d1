package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"
	"github.com/san-kum/marblebox/internal/control"
	"github.com/san-kum/marblebox/internal/physics"
)

// Theme Colors
var (
	ColBg       = rl.NewColor(10, 10, 10, 255)
	ColMarble   = rl.NewColor(59, 130, 246, 255) // blue
	ColObstacle = rl.NewColor(128, 128, 128, 255)
	ColDragged  = rl.NewColor(255, 215, 0, 255)
	ColSelect   = rl.NewColor(255, 255, 255, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTextDim  = rl.NewColor(60, 60, 60, 255)
	ColAccent   = rl.NewColor(180, 180, 180, 255)
)

const maxTelemetry = 200

// App is the windowed sandbox. World units map 1:1 to window pixels.
type App struct {
	Ctrl      *control.Controller
	World     *physics.World
	Name      string
	Telemetry []float64
}

// initWindow opens a window the size of the world bounds.
func initWindow(s physics.Settings, fps int, title string) {
	rl.InitWindow(int32(s.Width), int32(s.Height), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(ctrl *control.Controller, name string) *App {
	return &App{
		Ctrl:      ctrl,
		World:     ctrl.World(),
		Name:      name,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens the window and blocks until it is closed.
func Run(ctrl *control.Controller, name string, fps int) {
	app := NewApp(ctrl, name)
	initWindow(app.World.Settings(), fps, fmt.Sprintf("marblebox :: %s", name))
	defer rl.CloseWindow()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

// Update applies this frame's input, then steps unless paused.
func (a *App) Update() {
	a.handleKeys()
	a.handleMouse()

	if a.World.Paused() {
		return
	}
	a.World.Step()
	a.Telemetry = append(a.Telemetry, a.World.KineticEnergy())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyB):
		a.Ctrl.SpawnBody()
	case rl.IsKeyPressed(rl.KeyO):
		a.Ctrl.SpawnObstacle()
	case rl.IsKeyPressed(rl.KeyD):
		a.Ctrl.DeleteLastBody()
	case rl.IsKeyPressed(rl.KeyF):
		a.Ctrl.DeleteLastObstacle()
	case rl.IsKeyPressed(rl.KeyG):
		a.Ctrl.ToggleGravity()
	case rl.IsKeyPressed(rl.KeyP), rl.IsKeyPressed(rl.KeySpace):
		a.Ctrl.TogglePause()
	}
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	p := r2.Point{X: float64(mouse.X), Y: float64(mouse.Y)}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		a.Ctrl.PointerDown(p)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		a.Ctrl.PointerUp()
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		a.Ctrl.PointerMove(p)
	}
}
