// Package android adapts the Android input hook to the relay.
//
// The activity overrides onKeyDown/onKeyUp and forwards each call to a
// Manager; the Manager hands it to the single registered KeyEventListeners,
// normally a Bridge that feeds the relay.
package android

import (
	"sync"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// KeyEvent carries the fields the bridge reads from android.view.KeyEvent.
type KeyEvent struct {
	Action      int
	UnicodeChar int
	RepeatCount int
	Characters  string
}

// KeyEventListeners receives key transitions from the activity.
type KeyEventListeners interface {
	OnKeyDown(keyCode int, ev KeyEvent)
	OnKeyUp(keyCode int, ev KeyEvent)
}

// Manager is the hook the activity calls. It holds one listener set;
// registering another replaces it.
type Manager struct {
	mu        sync.Mutex
	listeners KeyEventListeners
}

// NewManager creates a Manager with no listeners.
func NewManager() *Manager {
	return &Manager{}
}

// RegisterListeners replaces the current listener set.
func (m *Manager) RegisterListeners(l KeyEventListeners) {
	m.mu.Lock()
	m.listeners = l
	m.mu.Unlock()
}

// OnKeyDown forwards a key-down from the activity.
func (m *Manager) OnKeyDown(keyCode int, ev KeyEvent) {
	if l := m.current(); l != nil {
		l.OnKeyDown(keyCode, ev)
	}
}

// OnKeyUp forwards a key-up from the activity.
func (m *Manager) OnKeyUp(keyCode int, ev KeyEvent) {
	if l := m.current(); l != nil {
		l.OnKeyUp(keyCode, ev)
	}
}

func (m *Manager) current() KeyEventListeners {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listeners
}

// Bridge converts Android key events into relay dispatches.
type Bridge struct {
	relay *relay.Relay
}

// NewBridge creates a Bridge and registers it with m.
func NewBridge(r *relay.Relay, m *Manager) *Bridge {
	b := &Bridge{relay: r}
	m.RegisterListeners(b)
	return b
}

// OnKeyDown implements KeyEventListeners.
func (b *Bridge) OnKeyDown(keyCode int, ev KeyEvent) {
	b.relay.DispatchKeyDown(raw(keyCode, ev, ev.RepeatCount))
}

// OnKeyUp implements KeyEventListeners. The native repeat counter is not
// forwarded for key-up.
func (b *Bridge) OnKeyUp(keyCode int, ev KeyEvent) {
	b.relay.DispatchKeyUp(raw(keyCode, ev, 0))
}

func raw(keyCode int, ev KeyEvent, repeat int) keyevent.Raw {
	return keyevent.Raw{
		KeyCode:     keyCode,
		Action:      ev.Action,
		UnicodeChar: rune(ev.UnicodeChar),
		Characters:  ev.Characters,
		RepeatCount: repeat,
	}
}
