package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/control"
)

var presetInfo = map[string]string{
	"default":   "a handful of marbles",
	"zero_g":    "floating, damped drift",
	"pegboard":  "marbles through pegs",
	"superball": "lossless bounces",
	"crowd":     "150 small marbles",
}

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateSim
)

// model is the preset picker that hands over to the sandbox once a
// preset is chosen.
type model struct {
	state, cursor int
	presets       []string
	seed          int64
	theme         Theme
	fps           int
	width, height int
	liveModel     Model
}

// NewInteractiveApp builds the picker. A positive fps overrides the chosen
// preset's rate.
func NewInteractiveApp(seed int64, theme Theme, fps int) *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		seed:    seed,
		theme:   theme,
		fps:     fps,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if m.state == stateMenu {
			return m.menuKey(msg)
		}
	}
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *model) start() tea.Cmd {
	name := m.presets[m.cursor]
	cfg := config.GetPreset(name)
	ctrl := control.New(cfg.NewWorld(), cfg.Spawn, m.seed)
	ctrl.Populate()

	fps := cfg.Loop.FPS
	if m.fps > 0 {
		fps = m.fps
	}
	m.liveModel = NewModel(ctrl, name, m.theme, fps)
	if m.width > 0 {
		m.liveModel.resize(m.width, m.height)
		m.liveModel.draw()
	}
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}
	return m.viewMenu()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("MARBLEBOX") + "\n    " + Subtle.Render("2d marble sandbox") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" start  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker, then the sandbox.
func RunInteractive(seed int64, theme Theme, fps int) error {
	_, err := tea.NewProgram(NewInteractiveApp(seed, theme, fps), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
