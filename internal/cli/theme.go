package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
)

// theme carries the style set for a presentation variant. Both variants
// render the same page; only colors, borders, and accents differ.
type theme struct {
	name string

	title   lipgloss.Style
	subtle  lipgloss.Style
	accent  lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	panel   lipgloss.Style
	status  lipgloss.Style
	keyHint lipgloss.Style
}

func classicTheme() theme {
	return theme{
		name:    config.ThemeClassic,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		keyHint: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func modernTheme() theme {
	return theme{
		name:    config.ThemeModern,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("161")),
		panel:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("99")).Padding(0, 1),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		keyHint: lipgloss.NewStyle().Foreground(lipgloss.Color("103")),
	}
}

func themeByName(name string) theme {
	if name == config.ThemeModern {
		return modernTheme()
	}
	return classicTheme()
}
