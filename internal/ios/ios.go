// Package ios adapts the iOS key handling trigger points to the relay.
// The native side decodes the pressed key itself and calls HandleKeyDown
// and HandleKeyUp.
package ios

import (
	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// Bridge forwards native key callbacks into a relay.
type Bridge struct {
	relay *relay.Relay
}

// NewBridge creates a Bridge for r.
func NewBridge(r *relay.Relay) *Bridge {
	return &Bridge{relay: r}
}

// HandleKeyDown is called by the native side on key press. A repeatCount
// of zero or less means the host reported none.
func (b *Bridge) HandleKeyDown(keyCode int, pressedKey string, action int, repeatCount int) {
	b.relay.DispatchKeyDown(keyevent.Raw{
		KeyCode:     keyCode,
		Action:      action,
		Decoded:     pressedKey,
		RepeatCount: repeatCount,
	})
}

// HandleKeyUp is called by the native side on key release.
func (b *Bridge) HandleKeyUp(keyCode int, pressedKey string, action int) {
	b.relay.DispatchKeyUp(keyevent.Raw{
		KeyCode: keyCode,
		Action:  action,
		Decoded: pressedKey,
	})
}
