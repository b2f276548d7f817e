package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	colorAccent = "#7D56F4"
	colorError  = "#FF0000"
	colorWarn   = "#FFA500"
	colorMuted  = "#626262"
)

var styles = newPalette()

// Palette holds the [lipgloss.Style] set used by the detail and error views.
type Palette struct {
	title lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	label lipgloss.Style
}

func newPalette() *Palette {
	return &Palette{
		title: bold(colorAccent).MarginBottom(1),
		err:   bold(colorError),
		warn:  fg(colorWarn),
		help:  fg(colorMuted).Italic(true),
		// wide enough for "Thumbnail" plus padding
		label: bold(colorMuted).Width(12),
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}
