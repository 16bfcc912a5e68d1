package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/marblebox/internal/sim"
	"github.com/san-kum/marblebox/internal/viz"
)

// FrameToSVG draws a frame as filled circles on a width x height board,
// in world units. Marbles and obstacles differ only by fill color.
func FrameToSVG(f sim.Frame, width, height float64, theme viz.Theme) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, b := range f.Bodies {
		fill := string(theme.Marble)
		switch {
		case b.Static:
			fill = string(theme.Obstacle)
		case b.Dragging:
			fill = string(theme.Accent)
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, b.Pos.X, b.Pos.Y, b.Radius, fill))
	}

	sb.WriteString(fmt.Sprintf(`<text x="8" y="16" font-family="monospace" font-size="12" fill="%s">%s</text>
`, string(theme.Text), infoLine(f)))
	sb.WriteString("</svg>")
	return sb.String()
}

func infoLine(f sim.Frame) string {
	gravity, state := "OFF", "RUNNING"
	if f.GravityOn {
		gravity = "ON"
	}
	if f.Paused {
		state = "PAUSED"
	}
	return fmt.Sprintf("frame %d | Marbles: %d | Obstacles: %d | Gravity: %s | %s", f.Number, f.Marbles, f.Obstacles, gravity, state)
}

// SeriesToSVG plots values as a polyline, e.g. kinetic energy per frame.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SVGRenderer keeps the most recent frame so it can be written once a run
// finishes.
type SVGRenderer struct {
	Width, Height float64
	Theme         viz.Theme

	last   sim.Frame
	frames int
}

func NewSVGRenderer(width, height float64, theme viz.Theme) *SVGRenderer {
	return &SVGRenderer{Width: width, Height: height, Theme: theme}
}

// Render copies f; Bodies must not be retained past the call.
func (r *SVGRenderer) Render(f sim.Frame) {
	r.last = f
	r.last.Bodies = append(f.Bodies[:0:0], f.Bodies...)
	r.frames++
}

func (r *SVGRenderer) Frames() int { return r.frames }

func (r *SVGRenderer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, FrameToSVG(r.last, r.Width, r.Height, r.Theme))
	return int64(n), err
}

// SaveSVG writes the last rendered frame to path.
func (r *SVGRenderer) SaveSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer f.Close()
	if _, err := r.WriteTo(f); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
