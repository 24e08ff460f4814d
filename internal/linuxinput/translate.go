// Package linuxinput reads key events from a Linux evdev keyboard device.
// Evdev reports press (1), auto-repeat (2) and release (0) values; repeats
// become key-down events with an increasing repeat count.
package linuxinput

import "github.com/HopIT-Hub/keyrelay/keyevent"

// evdev key values
const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// evdev codes for keys without an arithmetic mapping.
const (
	keyLeftShift  = 42
	keyRightShift = 54
)

var evdevToKeyCode = map[uint16]int{
	1:   keyevent.KeyCodeEscape,
	11:  keyevent.KeyCode0,
	12:  keyevent.KeyCodeMinus,
	13:  keyevent.KeyCodeEquals,
	14:  keyevent.KeyCodeDel,
	15:  keyevent.KeyCodeTab,
	26:  keyevent.KeyCodeLeftBracket,
	27:  keyevent.KeyCodeRightBracket,
	28:  keyevent.KeyCodeEnter,
	29:  keyevent.KeyCodeCtrlLeft,
	39:  keyevent.KeyCodeSemicolon,
	40:  keyevent.KeyCodeApostrophe,
	41:  keyevent.KeyCodeGrave,
	42:  keyevent.KeyCodeShiftLeft,
	43:  keyevent.KeyCodeBackslash,
	51:  keyevent.KeyCodeComma,
	52:  keyevent.KeyCodePeriod,
	53:  keyevent.KeyCodeSlash,
	54:  keyevent.KeyCodeShiftRight,
	56:  keyevent.KeyCodeAltLeft,
	57:  keyevent.KeyCodeSpace,
	58:  keyevent.KeyCodeCapsLock,
	87:  keyevent.KeyCodeF1 + 10,
	88:  keyevent.KeyCodeF12,
	97:  keyevent.KeyCodeCtrlRight,
	100: keyevent.KeyCodeAltRight,
	102: keyevent.KeyCodeMoveHome,
	103: keyevent.KeyCodeDpadUp,
	104: keyevent.KeyCodePageUp,
	105: keyevent.KeyCodeDpadLeft,
	106: keyevent.KeyCodeDpadRight,
	107: keyevent.KeyCodeMoveEnd,
	108: keyevent.KeyCodeDpadDown,
	109: keyevent.KeyCodePageDown,
	110: keyevent.KeyCodeInsert,
	111: keyevent.KeyCodeForwardDel,
	113: keyevent.KeyCodeVolumeMute,
	114: keyevent.KeyCodeVolumeDown,
	115: keyevent.KeyCodeVolumeUp,
	116: keyevent.KeyCodePower,
	125: keyevent.KeyCodeMetaLeft,
	126: keyevent.KeyCodeMetaRight,
	127: keyevent.KeyCodeMenu,
	158: keyevent.KeyCodeBack,
	172: keyevent.KeyCodeHome,
}

// Letter rows in evdev code order.
var letterRows = []struct {
	first   uint16
	letters string
}{
	{16, "qwertyuiop"},
	{30, "asdfghjkl"},
	{44, "zxcvbnm"},
}

// AndroidKeyCode maps an evdev key code to an Android key code.
func AndroidKeyCode(code uint16) int {
	if code >= 2 && code <= 10 { // KEY_1..KEY_9
		return keyevent.KeyCode0 + int(code) - 1
	}
	if code >= 59 && code <= 68 { // KEY_F1..KEY_F10
		return keyevent.KeyCodeF1 + int(code) - 59
	}
	for _, row := range letterRows {
		if code >= row.first && int(code-row.first) < len(row.letters) {
			return keyevent.KeyCodeA + int(row.letters[code-row.first]-'a')
		}
	}
	if c, ok := evdevToKeyCode[code]; ok {
		return c
	}
	return keyevent.KeyCodeUnknown
}

// Translator turns evdev key values into raw key events, tracking shift
// state and per-key repeat counters.
type Translator struct {
	leftShift  bool
	rightShift bool
	repeats    map[uint16]int
}

// NewTranslator returns a Translator with no keys held.
func NewTranslator() *Translator {
	return &Translator{repeats: make(map[uint16]int)}
}

// Translate converts one EV_KEY event. ok is false for values that are not
// a press, repeat or release.
func (t *Translator) Translate(code uint16, value int32) (raw keyevent.Raw, ok bool) {
	switch value {
	case valuePress:
		t.setShift(code, true)
		t.repeats[code] = 0
		raw.Action = keyevent.ActionDown
	case valueRepeat:
		t.repeats[code]++
		raw.Action = keyevent.ActionDown
		raw.RepeatCount = t.repeats[code]
	case valueRelease:
		t.setShift(code, false)
		delete(t.repeats, code)
		raw.Action = keyevent.ActionUp
	default:
		return keyevent.Raw{}, false
	}
	raw.KeyCode = AndroidKeyCode(code)
	raw.UnicodeChar = keyevent.Char(raw.KeyCode, t.leftShift || t.rightShift)
	return raw, true
}

func (t *Translator) setShift(code uint16, down bool) {
	switch code {
	case keyLeftShift:
		t.leftShift = down
	case keyRightShift:
		t.rightShift = down
	}
}
