package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/marblebox/internal/physics"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawWorld()
	a.DrawHUD()

	rl.EndDrawing()
}

// drawWorld draws bodies then obstacles; color is the only static/dynamic cue.
func (a *App) drawWorld() {
	for _, b := range a.World.Bodies() {
		col := ColMarble
		if b.Dragging {
			col = ColDragged
		}
		drawBody(b, col)
	}
	for _, o := range a.World.Obstacles() {
		drawBody(o, ColObstacle)
	}
}

func drawBody(b *physics.Body, col rl.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(b.Pos.X), float32(b.Pos.Y)), float32(b.Radius), col)
}

func (a *App) DrawHUD() {
	s := a.World.Settings()
	w, h := int32(s.Width), int32(s.Height)

	a.drawText("marblebox", 20, 16, 20, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 140, 20, 14, ColText)

	bodies, obstacles := a.World.Len()
	gravity, status, col := "OFF", "RUNNING", ColSelect
	if a.World.GravityEnabled() {
		gravity = "ON"
	}
	if a.World.Paused() {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, w-100, 20, 14, col)
	a.drawText(fmt.Sprintf("Marbles: %d | Obstacles: %d | Gravity: %s", bodies, obstacles, gravity), 20, 44, 14, ColText)

	a.DrawTelemetry(20, h-80, 240, 40)

	a.drawText("[B] MARBLE [O] OBSTACLE [D/F] DELETE [G] GRAVITY [P] PAUSE [Q] QUIT", 20, h-24, 10, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-70, h-24, 10, ColTextDim)
}

func (a *App) drawText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}

// DrawTelemetry plots recent kinetic energy in the given rectangle.
func (a *App) DrawTelemetry(rectX, rectY, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("KE: %.1f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 12, ColText)
}
