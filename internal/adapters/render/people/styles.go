package people

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	name        lipgloss.Style
	detail      lipgloss.Style
	fieldError  lipgloss.Style
	button      lipgloss.Style
	buttonFocus lipgloss.Style
	buttonOff   lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	failure     lipgloss.Style
	spinner     lipgloss.Style
	help        lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		name:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		fieldError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		button:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		buttonFocus: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		buttonOff:   lipgloss.NewStyle().Faint(true),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		failure:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
