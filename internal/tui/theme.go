package tui

import "github.com/charmbracelet/lipgloss"

// Theme carries the accent colors the panels render with. The accent
// follows the active department so a glance at the header tells the
// user which dataset they are scoped to.
type Theme struct {
	Accent    lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
	Danger    lipgloss.Color
	Highlight lipgloss.Color
}

var departmentAccents = map[string]lipgloss.Color{
	"sales":      lipgloss.Color("#5B8DEF"),
	"rentals":    lipgloss.Color("#4CAF50"),
	"resale":     lipgloss.Color("#F7B801"),
	"commercial": lipgloss.Color("#B388FF"),
}

const fallbackAccent = lipgloss.Color("#FF6B6B")

// themeFor returns the theme for a department. Unknown departments get
// the fallback accent so the header still reads as "scoped".
func themeFor(department string) Theme {
	accent, ok := departmentAccents[department]
	if !ok {
		accent = fallbackAccent
	}
	return Theme{
		Accent:    accent,
		Dim:       lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#444444"),
		Danger:    lipgloss.Color("#FF6B6B"),
		Highlight: lipgloss.Color("#EEEEEE"),
	}
}
