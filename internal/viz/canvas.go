package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Ink says what a cell shows, which picks its color.
type Ink uint8

const (
	InkNone Ink = iota
	InkWall
	InkMarble
	InkObstacle
	InkDragged
)

// Canvas is a braille dot grid. Each cell also remembers the strongest ink
// drawn into it, since a terminal cell has a single foreground color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]Ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]Ink, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at sub-pixel (x, y) with ink.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if ink > c.Ink[row][col] {
		c.Ink[row][col] = ink
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every dot within r of (cx, cy). Radii below one dot
// still light the center so tiny marbles stay visible.
func (c *Canvas) FillCircle(cx, cy, r float64, ink Ink) {
	x0, x1 := int(cx-r), int(cx+r)
	y0, y1 := int(cy-r), int(cy+r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, ink)
			}
		}
	}
	c.Set(int(cx), int(cy), ink)
}

// Frame outlines the whole canvas.
func (c *Canvas) Frame(ink Ink) {
	w, h := c.Dots()
	c.DrawLine(0, 0, w-1, 0, ink)
	c.DrawLine(0, h-1, w-1, h-1, ink)
	c.DrawLine(0, 0, 0, h-1, ink)
	c.DrawLine(w-1, 0, w-1, h-1, ink)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each run of same-ink cells colored by theme.
func (c *Canvas) Render(theme Theme) string {
	styles := map[Ink]lipgloss.Style{
		InkNone:     lipgloss.NewStyle(),
		InkWall:     lipgloss.NewStyle().Foreground(theme.Muted),
		InkMarble:   lipgloss.NewStyle().Foreground(theme.Marble),
		InkObstacle: lipgloss.NewStyle().Foreground(theme.Obstacle),
		InkDragged:  lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
	}

	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Ink[row][col] == c.Ink[row][start] {
				continue
			}
			b.WriteString(styles[c.Ink[row][start]].Render(string(c.Grid[row][start:col])))
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
