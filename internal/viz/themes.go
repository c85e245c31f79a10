package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the colour scheme of the plots and controls. Prey and
// Predator are used twice: as lipgloss colours for legends and as asciigraph
// series colours for the time-series plot.
type Theme struct {
	Name     string
	Prey     lipgloss.Color
	Predator lipgloss.Color
	Phase    lipgloss.Color
	PreyANSI asciigraph.AnsiColor
	PredANSI asciigraph.AnsiColor
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Error    lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:     "classic",
		Prey:     lipgloss.Color("#1f77b4"), // tab10 blue
		Predator: lipgloss.Color("#d62728"), // tab10 red
		Phase:    lipgloss.Color("#9467bd"),
		PreyANSI: asciigraph.Blue,
		PredANSI: asciigraph.Red,
		Accent:   lipgloss.Color("#ffaa00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Border:   lipgloss.Color("#444466"),
		Error:    lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Prey:     lipgloss.Color("#88ff88"),
		Predator: lipgloss.Color("#00aa00"),
		Phase:    lipgloss.Color("#00ff00"),
		PreyANSI: asciigraph.LightGreen,
		PredANSI: asciigraph.Green,
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Border:   lipgloss.Color("#003300"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Prey:     lipgloss.Color("#00a8cc"),
		Predator: lipgloss.Color("#ffd700"),
		Phase:    lipgloss.Color("#e0f0ff"),
		PreyANSI: asciigraph.Cyan,
		PredANSI: asciigraph.Yellow,
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Border:   lipgloss.Color("#0077be"),
		Error:    lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
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

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
