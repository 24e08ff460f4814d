// Package relay delivers normalized key events from host input adapters to
// at most one registered listener per event kind.
//
// A Relay is constructed once by the boot path and handed to both sides:
// adapters call DispatchKeyDown/DispatchKeyUp, the application registers
// listeners with OnKeyDown/OnKeyUp. Registering replaces the previous
// listener; there is no fan-out.
package relay

import (
	"errors"
	"sync"

	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// ErrNoHost is returned by New when no host context is supplied.
var ErrNoHost = errors.New("relay: host context is nil")

// Listener receives normalized key events.
type Listener func(keyevent.Data)

// Host reports whether the embedding runtime can still receive events.
type Host interface {
	Active() bool
}

// Stats is a snapshot of the relay's registration state and counters.
type Stats struct {
	KeyDownRegistered bool   `json:"key_down_registered"`
	KeyUpRegistered   bool   `json:"key_up_registered"`
	Delivered         uint64 `json:"delivered"`
	Dropped           uint64 `json:"dropped"`
	Suppressed        uint64 `json:"suppressed"`
}

// Relay holds the current key-down and key-up listeners.
type Relay struct {
	host Host

	mu         sync.Mutex
	onKeyDown  Listener
	onKeyUp    Listener
	delivered  uint64
	dropped    uint64
	suppressed uint64
}

// New creates a relay bound to host. A nil host is a fatal
// initialization error.
func New(host Host) (*Relay, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	return &Relay{host: host}, nil
}

// OnKeyDown registers l for key-down events, replacing any previous
// listener. A nil listener empties the slot.
func (r *Relay) OnKeyDown(l Listener) {
	r.mu.Lock()
	r.onKeyDown = l
	r.mu.Unlock()
}

// OnKeyUp registers l for key-up events, replacing any previous listener.
func (r *Relay) OnKeyUp(l Listener) {
	r.mu.Lock()
	r.onKeyUp = l
	r.mu.Unlock()
}

// RemoveKeyDownListener empties the key-down slot. Later key-down events
// are dropped.
func (r *Relay) RemoveKeyDownListener() {
	r.OnKeyDown(nil)
}

// RemoveKeyUpListener empties the key-up slot.
func (r *Relay) RemoveKeyUpListener() {
	r.OnKeyUp(nil)
}

// DispatchKeyDown normalizes raw and hands it to the key-down listener.
// It is a no-op when no listener is registered or the host is inactive.
func (r *Relay) DispatchKeyDown(raw keyevent.Raw) {
	r.mu.Lock()
	l := r.onKeyDown
	r.mu.Unlock()
	r.deliver(l, keyevent.NormalizeDown(raw))
}

// DispatchKeyUp normalizes raw and hands it to the key-up listener. The
// delivered record never carries a repeat count.
func (r *Relay) DispatchKeyUp(raw keyevent.Raw) {
	r.mu.Lock()
	l := r.onKeyUp
	r.mu.Unlock()
	r.deliver(l, keyevent.NormalizeUp(raw))
}

// deliver runs the listener outside the lock so it may re-register.
func (r *Relay) deliver(l Listener, d keyevent.Data) {
	if l == nil {
		r.count(&r.dropped)
		return
	}
	if !r.host.Active() {
		r.count(&r.suppressed)
		return
	}
	l(d)
	r.count(&r.delivered)
}

func (r *Relay) count(c *uint64) {
	r.mu.Lock()
	*c++
	r.mu.Unlock()
}

// Stats returns the current registration state and counters.
func (r *Relay) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		KeyDownRegistered: r.onKeyDown != nil,
		KeyUpRegistered:   r.onKeyUp != nil,
		Delivered:         r.delivered,
		Dropped:           r.dropped,
		Suppressed:        r.suppressed,
	}
}

// ChanListener returns a listener that sends each record on ch without
// blocking. Records are discarded while ch is full, so a consumer on another
// goroutine never slows the adapter that produced them.
func ChanListener(ch chan<- keyevent.Data) Listener {
	return func(d keyevent.Data) {
		select {
		case ch <- d:
		default:
		}
	}
}
