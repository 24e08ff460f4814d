// Package keyevent defines the normalized key event record delivered to
// listeners and the raw event shape produced by host input adapters.
//
// Key codes and action codes follow Android's android.view.KeyEvent
// numbering so that every adapter (Android, iOS, desktop hotkeys, evdev,
// USB HID, terminal) reports in the same space.
package keyevent

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Action codes (android.view.KeyEvent.ACTION_*).
const (
	ActionDown     = 0
	ActionUp       = 1
	ActionMultiple = 2
)

// ActionName returns a short name for an action code.
func ActionName(action int) string {
	switch action {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMultiple:
		return "multiple"
	default:
		return "action(" + strconv.Itoa(action) + ")"
	}
}

// Raw is a key event as reported by a host input adapter, before
// normalization. Values are passed through unmodified.
type Raw struct {
	KeyCode int
	Action  int

	// UnicodeChar is the character the key produces, 0 when none.
	UnicodeChar rune

	// Decoded is a character string already decoded by the host. It is used
	// when UnicodeChar is 0.
	Decoded string

	// Characters carries the raw text of an ACTION_MULTIPLE event with an
	// unknown key code. Empty means the host reported none.
	Characters string

	// RepeatCount is the host's auto-repeat counter for key-down events.
	RepeatCount int
}

// Data is the normalized record delivered to listeners.
type Data struct {
	KeyCode     int    `json:"keyCode"`
	Action      int    `json:"action"`
	PressedKey  string `json:"pressedKey"`
	RepeatCount *int   `json:"repeatCount,omitempty"`
}

// NormalizeDown builds the record for a key-down event.
func NormalizeDown(raw Raw) Data {
	d := normalize(raw)
	if raw.RepeatCount > 0 {
		n := raw.RepeatCount
		d.RepeatCount = &n
	}
	return d
}

// NormalizeUp builds the record for a key-up event. Key-up records never
// carry a repeat count.
func NormalizeUp(raw Raw) Data {
	return normalize(raw)
}

func normalize(raw Raw) Data {
	d := Data{
		KeyCode:    raw.KeyCode,
		Action:     raw.Action,
		PressedKey: decode(raw),
	}
	if raw.Action == ActionMultiple && raw.KeyCode == KeyCodeUnknown && raw.Characters != "" {
		d.PressedKey = raw.Characters
	}
	return d
}

func decode(raw Raw) string {
	if raw.UnicodeChar != 0 {
		return string(raw.UnicodeChar)
	}
	return raw.Decoded
}

// HasRepeat reports whether the record carries a repeat count.
func (d Data) HasRepeat() bool {
	return d.RepeatCount != nil
}

// Repeat returns the repeat count, or 0 when absent.
func (d Data) Repeat() int {
	if d.RepeatCount == nil {
		return 0
	}
	return *d.RepeatCount
}

// Equal reports whether two records hold the same values.
func (d Data) Equal(o Data) bool {
	if d.KeyCode != o.KeyCode || d.Action != o.Action || d.PressedKey != o.PressedKey {
		return false
	}
	if d.HasRepeat() != o.HasRepeat() {
		return false
	}
	return d.Repeat() == o.Repeat()
}

// Map returns the record as the key-value payload handed across runtime
// boundaries. repeatCount is only present when set.
func (d Data) Map() map[string]any {
	m := map[string]any{
		"keyCode":    d.KeyCode,
		"action":     d.Action,
		"pressedKey": d.PressedKey,
	}
	if d.RepeatCount != nil {
		m["repeatCount"] = *d.RepeatCount
	}
	return m
}

// JSON encodes the record payload.
func (d Data) JSON() ([]byte, error) {
	return json.Marshal(d)
}

func (d Data) String() string {
	s := fmt.Sprintf("%s key=%s(%d) char=%q", ActionName(d.Action), KeyCodeName(d.KeyCode), d.KeyCode, d.PressedKey)
	if d.RepeatCount != nil {
		s += fmt.Sprintf(" repeat=%d", *d.RepeatCount)
	}
	return s
}
