package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Marble   lipgloss.Color
	Obstacle lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:     "classic",
		Marble:   lipgloss.Color("#3b82f6"), // blue
		Obstacle: lipgloss.Color("#808080"), // grey
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Success:  lipgloss.Color("#00ff88"),
		Warning:  lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Marble:   lipgloss.Color("#00ffff"), // Cyan
		Obstacle: lipgloss.Color("#ff00ff"), // Magenta
		Accent:   lipgloss.Color("#ffff00"), // Yellow
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Success:  lipgloss.Color("#00ff00"),
		Warning:  lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Marble:   lipgloss.Color("#00ff00"), // Green phosphor
		Obstacle: lipgloss.Color("#005500"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Success:  lipgloss.Color("#88ff88"),
		Warning:  lipgloss.Color("#ffff00"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Marble:   lipgloss.Color("#ff6b6b"), // Coral
		Obstacle: lipgloss.Color("#8b6b8c"),
		Accent:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Success:  lipgloss.Color("#5fd068"),
		Warning:  lipgloss.Color("#ffc048"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

// ThemeNames lists the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
