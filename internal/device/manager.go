// Package device manages the connection to a USB keyboard used as a key
// event source. It detects the keyboard when plugged in, reconnects on
// disconnect, and dispatches every key transition into the relay.
package device

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
	"github.com/HopIT-Hub/keyrelay/usbhid"
)

// State represents the current device state.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

const defaultPollInterval = 2 * time.Second

// Keyboard is an open keyboard handle.
type Keyboard interface {
	ReadReport(ctx context.Context) ([]byte, error)
	Close()
}

// Opener opens the keyboard, returning an error while it is absent.
type Opener func() (Keyboard, error)

// USBOpener opens a boot-protocol keyboard by vendor/product ID.
func USBOpener(vendorID, productID uint16, serial string) Opener {
	return func() (Keyboard, error) {
		dev, err := usbhid.Open(vendorID, productID, serial)
		if err != nil {
			return nil, err
		}
		return dev, nil
	}
}

// Manager handles the keyboard lifecycle.
type Manager struct {
	relay        *relay.Relay
	open         Opener
	onChange     func(State) // callback when state changes
	pollInterval time.Duration

	mu    sync.Mutex
	state State
}

// NewManager creates a new device manager.
// onChange is called whenever the device state changes.
func NewManager(r *relay.Relay, open Opener, onChange func(State)) *Manager {
	return &Manager{
		relay:        r,
		open:         open,
		onChange:     onChange,
		pollInterval: defaultPollInterval,
		state:        Disconnected,
	}
}

// State returns the current device state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Run starts the auto-detection loop. It polls for the keyboard every
// 2 seconds and, once connected, reads reports until the device goes away.
// Blocks until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		if kb, err := m.open(); err == nil {
			m.setState(Connected)
			log.Println("[device] keyboard connected")
			m.read(ctx, kb)
			kb.Close()
			m.setState(Disconnected)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// read dispatches transitions until the keyboard fails or ctx is done.
// Keys still held when reading stops are released.
func (m *Manager) read(ctx context.Context, kb Keyboard) {
	var dec usbhid.Decoder
	defer func() {
		m.dispatch(dec.Decode(make([]byte, usbhid.ReportSize)))
	}()

	for {
		report, err := kb.ReadReport(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[device] keyboard disconnected: %v", err)
			}
			return
		}
		m.dispatch(dec.Decode(report))
	}
}

func (m *Manager) dispatch(ts []usbhid.Transition) {
	for _, t := range ts {
		raw := t.Raw()
		if raw.Action == keyevent.ActionDown {
			m.relay.DispatchKeyDown(raw)
		} else {
			m.relay.DispatchKeyUp(raw)
		}
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	changed := m.state != s
	m.state = s
	m.mu.Unlock()
	if changed && m.onChange != nil {
		m.onChange(s)
	}
}
