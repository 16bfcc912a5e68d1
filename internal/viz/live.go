package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/marblebox/internal/control"
	"github.com/san-kum/marblebox/internal/physics"
)

const (
	defaultCols     = 60
	defaultRows     = 22
	minCols         = 20
	minRows         = 8
	statsWidth      = 48
	historyCapacity = 300

	// canvasStyle padding, in cells.
	padLeft = 2
	padTop  = 1
)

type TickMsg time.Time

// Model is the interactive sandbox: it owns the frame loop and translates
// keys and mouse events into controller commands.
type Model struct {
	ctrl           *control.Controller
	world          *physics.World
	canvas         *Canvas
	theme          Theme
	name           string
	fps            int
	energyHistory  []float64
	contactHistory []float64
	lastAction     string
	showHelp       bool
}

// NewModel wraps ctrl in a sandbox named name, ticking fps times a second.
func NewModel(ctrl *control.Controller, name string, theme Theme, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		ctrl:           ctrl,
		world:          ctrl.World(),
		canvas:         NewCanvas(defaultCols, defaultRows),
		theme:          theme,
		name:           name,
		fps:            fps,
		energyHistory:  make([]float64, 0, historyCapacity),
		contactHistory: make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the world.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.handleKey(msg.String())
		m.draw()
	case tea.MouseMsg:
		m.handleMouse(msg)
		m.draw()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()
	case TickMsg:
		// paused ticks idle but keep the loop scheduled
		if !m.world.Paused() {
			m.step()
			m.draw()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	switch key {
	case "b":
		m.ctrl.SpawnBody()
		m.lastAction = "spawned marble"
	case "o":
		m.ctrl.SpawnObstacle()
		m.lastAction = "spawned obstacle"
	case "d":
		if m.ctrl.DeleteLastBody() {
			m.lastAction = "deleted marble"
		}
	case "D", "f":
		if m.ctrl.DeleteLastObstacle() {
			m.lastAction = "deleted obstacle"
		}
	case "g":
		if m.ctrl.ToggleGravity() {
			m.lastAction = "gravity on"
		} else {
			m.lastAction = "gravity off"
		}
	case " ", "p":
		if m.ctrl.TogglePause() {
			m.lastAction = "paused"
		} else {
			m.lastAction = "resumed"
		}
	case "t":
		m.theme = NextTheme(m.theme)
		m.lastAction = "theme " + m.theme.Name
	case "?":
		m.showHelp = !m.showHelp
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, inside := m.toWorld(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			if m.ctrl.PointerDown(p) {
				m.lastAction = "dragging"
			}
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(p)
	case tea.MouseActionRelease:
		if m.world.Dragged() != nil {
			m.lastAction = "released"
		}
		m.ctrl.PointerUp()
	}
}

// step advances the world one frame and records history.
func (m *Model) step() {
	m.world.Step()
	m.energyHistory = appendCapped(m.energyHistory, m.world.KineticEnergy())
	m.contactHistory = appendCapped(m.contactHistory, float64(m.world.Contacts()))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) resize(w, h int) {
	cols := w - statsWidth - 2*padLeft - 2
	rows := h - 2*padTop
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.canvas = NewCanvas(cols, rows)
}

// scale returns dots per world unit on each axis.
func (m *Model) scale() (float64, float64) {
	dw, dh := m.canvas.Dots()
	s := m.world.Settings()
	return float64(dw) / s.Width, float64(dh) / s.Height
}

// toWorld maps a terminal cell to the world point under the center of that
// cell. Points outside the canvas are clamped to it; inside reports whether
// the cell was on the canvas at all.
func (m *Model) toWorld(col, row int) (p r2.Point, inside bool) {
	cx, cy := col-padLeft, row-padTop
	inside = cx >= 0 && cy >= 0 && cx < m.canvas.Width && cy < m.canvas.Height
	cx = clampInt(cx, 0, m.canvas.Width-1)
	cy = clampInt(cy, 0, m.canvas.Height-1)

	sx, sy := m.scale()
	return r2.Point{
		X: float64(cx*2+1) / sx,
		Y: float64(cy*4+2) / sy,
	}, inside
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.Frame(InkWall)

	sx, sy := m.scale()
	r := math.Min(sx, sy)
	for _, o := range m.world.Obstacles() {
		m.canvas.FillCircle(o.Pos.X*sx, o.Pos.Y*sy, o.Radius*r, InkObstacle)
	}
	for _, b := range m.world.Bodies() {
		ink := InkMarble
		if b.Dragging {
			ink = InkDragged
		}
		m.canvas.FillCircle(b.Pos.X*sx, b.Pos.Y*sy, b.Radius*r, ink)
	}
}

// InfoLine summarizes the scene the way the status bar shows it.
func InfoLine(w *physics.World) string {
	bodies, obstacles := w.Len()
	gravity, state := "OFF", "RUNNING"
	if w.GravityEnabled() {
		gravity = "ON"
	}
	if w.Paused() {
		state = "PAUSED"
	}
	return fmt.Sprintf("Marbles: %d | Obstacles: %d | Gravity: %s | %s", bodies, obstacles, gravity, state)
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), m.theme.Marble, m.theme.Accent) + "\n")
	s.WriteString(Separator(statsWidth-6) + "\n")

	if m.world.Paused() {
		s.WriteString(StatusPaused.Render("■ PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.world.Frames())+" RUNNING") + "\n\n")
	}

	bodies, obstacles := m.world.Len()
	gravity := "off"
	if m.world.GravityEnabled() {
		gravity = "on"
	}
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.world.Frames()))
	row("Marbles", fmt.Sprintf("%d", bodies))
	row("Obstacles", fmt.Sprintf("%d", obstacles))
	row("Gravity", gravity)
	row("Energy", fmt.Sprintf("%.2f", energy))
	row("Contacts", fmt.Sprintf("%d", m.world.Contacts()))
	s.WriteString(MetricLabel.Render("") + SparklineChart(m.contactHistory, 24) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.lastAction != "" {
		s.WriteString(Subtle.Render("» "+m.lastAction) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("b/o:Spawn d/D:Delete g:Gravity\nSP:Pause t:Theme ?:Help q:Quit\nmouse: drag a marble"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).PaddingLeft(padLeft).Render(InfoLine(m.world))
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, footer)
	if m.showHelp {
		return view + "\n" + helpOverlay
	}
	return view
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  b        - Spawn marble             ║
║  o        - Spawn obstacle           ║
║  d        - Delete last marble       ║
║  D / f    - Delete last obstacle     ║
║  g        - Toggle gravity           ║
║  Space/p  - Pause/Resume             ║
║  t        - Cycle themes             ║
║  mouse    - Drag a marble            ║
║  q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the sandbox full screen with mouse tracking.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
