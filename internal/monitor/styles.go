package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/HopIT-Hub/keyrelay/keyevent"
)

var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorAccent = lipgloss.Color("#7D56F4")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	downStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	upStyle = lipgloss.NewStyle().
		Foreground(colorBlue)

	multipleStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	charStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// actionStyle returns the style for an action code.
func actionStyle(action int) lipgloss.Style {
	switch action {
	case keyevent.ActionDown:
		return downStyle
	case keyevent.ActionUp:
		return upStyle
	default:
		return multipleStyle
	}
}
