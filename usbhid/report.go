// Package usbhid reads key transitions from a USB keyboard speaking the HID
// boot protocol, without a kernel keyboard driver in between.
//
// Protocol reference: Device Class Definition for HID 1.11, Appendix B.1.
package usbhid

import "github.com/HopIT-Hub/keyrelay/keyevent"

// ReportSize is the length of a boot keyboard input report:
// [modifier, reserved, key1, key2, key3, key4, key5, key6]
const ReportSize = 8

// errorRollOver fills the key array when too many keys are held.
const errorRollOver = 0x01

// Modifier bits in byte 0 map to usages 0xE0..0xE7.
const (
	modLeftShift  = 1 << 1
	modRightShift = 1 << 5
	firstModUsage = 0xE0
)

// Transition is a single key going down or up.
type Transition struct {
	Usage byte
	Down  bool
	Shift bool // shift held after the report was applied
}

// Raw converts the transition into a raw key event.
func (t Transition) Raw() keyevent.Raw {
	code := AndroidKeyCode(t.Usage)
	r := keyevent.Raw{KeyCode: code, Action: keyevent.ActionUp}
	if t.Down {
		r.Action = keyevent.ActionDown
	}
	r.UnicodeChar = keyevent.Char(code, t.Shift)
	return r
}

// Decoder diffs successive reports into transitions. The zero value
// starts with all keys released.
type Decoder struct {
	prev [ReportSize]byte
}

// Decode returns the transitions between the previous report and report.
// Short reports and rollover error reports produce no transitions.
// Releases are reported before presses.
func (d *Decoder) Decode(report []byte) []Transition {
	if len(report) < ReportSize {
		return nil
	}
	var cur [ReportSize]byte
	copy(cur[:], report[:ReportSize])
	if cur[2] == errorRollOver {
		return nil
	}

	shift := cur[0]&(modLeftShift|modRightShift) != 0
	var out []Transition

	for bit := 0; bit < 8; bit++ {
		mask := byte(1) << bit
		was, is := d.prev[0]&mask != 0, cur[0]&mask != 0
		if was && !is {
			out = append(out, Transition{Usage: firstModUsage + byte(bit), Down: false, Shift: shift})
		}
	}
	for _, u := range d.prev[2:] {
		if u != 0 && !contains(cur[2:], u) {
			out = append(out, Transition{Usage: u, Down: false, Shift: shift})
		}
	}
	for bit := 0; bit < 8; bit++ {
		mask := byte(1) << bit
		was, is := d.prev[0]&mask != 0, cur[0]&mask != 0
		if !was && is {
			out = append(out, Transition{Usage: firstModUsage + byte(bit), Down: true, Shift: shift})
		}
	}
	for _, u := range cur[2:] {
		if u != 0 && !contains(d.prev[2:], u) {
			out = append(out, Transition{Usage: u, Down: true, Shift: shift})
		}
	}

	d.prev = cur
	return out
}

// Reset forgets the previous report, e.g. after a reconnect.
func (d *Decoder) Reset() {
	d.prev = [ReportSize]byte{}
}

func contains(keys []byte, u byte) bool {
	for _, k := range keys {
		if k == u {
			return true
		}
	}
	return false
}
