package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// dropdownOption is a single selectable row in a dropdown panel.
type dropdownOption struct {
	label string // display text
	value string // wire value sent to the backend on selection
}

// dropdown is the inline picker rendered inside an open action hub
// (stage transitions, reassignment targets). It captures keyboard
// input while visible: up/down navigate, enter selects, escape
// dismisses.
type dropdown struct {
	options []dropdownOption
	cursor  int
}

func newDropdown(options []dropdownOption) *dropdown {
	return &dropdown{options: options}
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (d *dropdown) MoveUp() {
	d.cursor--
	if d.cursor < 0 {
		d.cursor = len(d.options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (d *dropdown) MoveDown() {
	d.cursor++
	if d.cursor >= len(d.options) {
		d.cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (d *dropdown) Selected() dropdownOption {
	return d.options[d.cursor]
}

// Render produces the picker lines. Every line gets the same visible
// width so the block reads as one panel; the highlighted row uses the
// accent background.
func (d *dropdown) Render(theme Theme) []string {
	maxLabelWidth := 0
	for _, option := range d.options {
		if w := ansi.StringWidth(option.label); w > maxLabelWidth {
			maxLabelWidth = w
		}
	}
	innerWidth := 2 + maxLabelWidth

	base := lipgloss.NewStyle().Foreground(theme.Highlight)
	selected := lipgloss.NewStyle().
		Background(theme.Accent).
		Foreground(lipgloss.Color("#111111"))

	lines := make([]string, 0, len(d.options))
	for index, option := range d.options {
		marker := " "
		if index == d.cursor {
			marker = ">"
		}
		content := marker + " " + option.label
		if pad := innerWidth - ansi.StringWidth(content); pad > 0 {
			content += strings.Repeat(" ", pad)
		}
		if index == d.cursor {
			lines = append(lines, selected.Render(" "+content+" "))
		} else {
			lines = append(lines, base.Render(" "+content+" "))
		}
	}
	return lines
}
