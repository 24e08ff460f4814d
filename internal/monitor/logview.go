package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLines bounds the retained event history.
const maxLines = 1000

// logView is a scrollable event log wrapping bubbles/viewport.
// In follow mode new lines scroll the view to the bottom.
type logView struct {
	vp     viewport.Model
	lines  []string
	follow bool
}

func newLogView(w, h int) logView {
	return logView{vp: viewport.New(w, h), follow: true}
}

func (v logView) appendLine(rendered string) logView {
	v.lines = append(v.lines, rendered)
	if len(v.lines) > maxLines {
		v.lines = v.lines[len(v.lines)-maxLines:]
	}
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

func (v logView) toggleFollow() logView {
	v.follow = !v.follow
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

func (v logView) setSize(w, h int) logView {
	v.vp.Width = w
	v.vp.Height = h
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// update forwards mouse scrolling. Scrolling away from the bottom leaves
// follow mode.
func (v logView) update(msg tea.Msg) (logView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	if _, ok := msg.(tea.MouseMsg); ok && v.follow && !v.vp.AtBottom() {
		v.follow = false
	}
	return v, cmd
}

func (v logView) view() string {
	return v.vp.View()
}
