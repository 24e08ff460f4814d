// Package monitor is a bubbletea terminal UI that acts as a key source for
// the relay and shows every event the relay delivers.
//
// Keys typed into the terminal are dispatched as key-down followed by a
// synthesized key-up. Other sources (hotkeys, evdev, USB) dispatch into the
// same relay and their events show up in the same log.
package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// eventBuffer is the capacity of the delivered-event channel.
const eventBuffer = 256

type entry struct {
	at   time.Time
	data keyevent.Data
}

// Model is the bubbletea model for the key monitor.
type Model struct {
	relay   *relay.Relay
	events  <-chan keyevent.Data
	sources []string

	log    logView
	width  int
	height int

	last  *entry
	stats relay.Stats
	now   func() time.Time
}

// eventMsg wraps a delivered record.
type eventMsg keyevent.Data

// New creates a monitor on r and registers it as both the key-down and
// key-up listener. sources names the active event sources for the header.
func New(r *relay.Relay, sources []string) Model {
	ch := make(chan keyevent.Data, eventBuffer)
	r.OnKeyDown(relay.ChanListener(ch))
	r.OnKeyUp(relay.ChanListener(ch))

	return Model{
		relay:   r,
		events:  ch,
		sources: sources,
		log:     newLogView(80, 22),
		width:   80,
		height:  24,
		stats:   r.Stats(),
		now:     time.Now,
	}
}

// Init starts listening for delivered events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch <-chan keyevent.Data) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-ch)
	}
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.log, cmd = m.log.update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log = m.log.setSize(msg.Width, m.logHeight())
		return m, nil

	case eventMsg:
		e := entry{at: m.now(), data: keyevent.Data(msg)}
		m.last = &e
		m.log = m.log.appendLine(renderEntry(e))
		m.stats = m.relay.Stats()
		return m, waitForEvent(m.events)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		m.log = m.log.toggleFollow()
		return m, nil
	}

	raw, ok := rawFromKey(msg)
	if !ok {
		return m, nil
	}
	m.relay.DispatchKeyDown(raw)
	if raw.Action == keyevent.ActionDown {
		m.relay.DispatchKeyUp(upFor(raw))
	}
	m.stats = m.relay.Stats()
	return m, nil
}

func (m Model) logHeight() int {
	h := m.height - 2 // header + footer
	if h < 1 {
		h = 1
	}
	return h
}
