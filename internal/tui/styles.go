package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/notepad/internal/theme"
)

type palette struct {
	fg, bg, muted, accent, alert lipgloss.Color
}

var palettes = map[theme.Theme]palette{
	theme.Light: {fg: "235", bg: "255", muted: "245", accent: "25", alert: "160"},
	theme.Dark:  {fg: "252", bg: "235", muted: "241", accent: "75", alert: "203"},
}

type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	sidebar  lipgloss.Style
	pane     lipgloss.Style
	focused  lipgloss.Style
	item     lipgloss.Style
	cursor   lipgloss.Style
	current  lipgloss.Style
	status   lipgloss.Style
	alert    lipgloss.Style
	prompt   lipgloss.Style
	disabled lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Light]
	}
	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.muted).
		Padding(0, 1)

	return styles{
		app:      lipgloss.NewStyle().Foreground(p.fg).Background(p.bg),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		sidebar:  border,
		pane:     border,
		focused:  border.BorderForeground(p.accent),
		item:     lipgloss.NewStyle().Foreground(p.fg),
		cursor:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		current:  lipgloss.NewStyle().Foreground(p.accent).Underline(true),
		status:   lipgloss.NewStyle().Foreground(p.muted),
		alert:    lipgloss.NewStyle().Foreground(p.alert).Bold(true),
		prompt:   lipgloss.NewStyle().Foreground(p.accent),
		disabled: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}
