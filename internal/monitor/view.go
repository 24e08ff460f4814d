package monitor

import (
	"fmt"
	"strings"

	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// View renders the header bar, the event log and the footer bar.
func (m Model) View() string {
	return m.renderHeader() + "\n" + m.log.view() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	sources := "terminal"
	if len(m.sources) > 0 {
		sources = strings.Join(m.sources, ", ")
	}
	parts := []string{
		"keyrelay monitor",
		"sources: " + sources,
		fmt.Sprintf("delivered: %d", m.stats.Delivered),
		fmt.Sprintf("dropped: %d", m.stats.Dropped),
		fmt.Sprintf("suppressed: %d", m.stats.Suppressed),
	}
	return headerStyle.Width(m.width).Render(strings.Join(parts, "  │  "))
}

func (m Model) renderFooter() string {
	left := "last: none"
	if m.last != nil {
		left = "last: " + m.last.data.String()
	}
	follow := "off"
	if m.log.follow {
		follow = "on"
	}
	right := fmt.Sprintf("ctrl+l follow (%s)  ctrl+c quit", follow)

	gap := m.width - len(left) - len(right)
	if gap < 2 {
		gap = 2
	}
	return footerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderEntry(e entry) string {
	d := e.data
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", e.at.Format("15:04:05.000")))
	action := actionStyle(d.Action).Render(fmt.Sprintf("%-8s", keyevent.ActionName(d.Action)))
	line := fmt.Sprintf("%s  %s %-14s %s", ts, action,
		fmt.Sprintf("%s(%d)", keyevent.KeyCodeName(d.KeyCode), d.KeyCode),
		charStyle.Render(fmt.Sprintf("%q", d.PressedKey)))
	if d.HasRepeat() {
		line += fmt.Sprintf("  repeat=%d", d.Repeat())
	}
	return line
}
