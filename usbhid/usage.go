package usbhid

import "github.com/HopIT-Hub/keyrelay/keyevent"

// Keyboard/Keypad page (0x07) usages that have no arithmetic mapping.
var usageToKeyCode = map[byte]int{
	0x28: keyevent.KeyCodeEnter,
	0x29: keyevent.KeyCodeEscape,
	0x2A: keyevent.KeyCodeDel,
	0x2B: keyevent.KeyCodeTab,
	0x2C: keyevent.KeyCodeSpace,
	0x2D: keyevent.KeyCodeMinus,
	0x2E: keyevent.KeyCodeEquals,
	0x2F: keyevent.KeyCodeLeftBracket,
	0x30: keyevent.KeyCodeRightBracket,
	0x31: keyevent.KeyCodeBackslash,
	0x33: keyevent.KeyCodeSemicolon,
	0x34: keyevent.KeyCodeApostrophe,
	0x35: keyevent.KeyCodeGrave,
	0x36: keyevent.KeyCodeComma,
	0x37: keyevent.KeyCodePeriod,
	0x38: keyevent.KeyCodeSlash,
	0x39: keyevent.KeyCodeCapsLock,
	0x49: keyevent.KeyCodeInsert,
	0x4A: keyevent.KeyCodeMoveHome,
	0x4B: keyevent.KeyCodePageUp,
	0x4C: keyevent.KeyCodeForwardDel,
	0x4D: keyevent.KeyCodeMoveEnd,
	0x4E: keyevent.KeyCodePageDown,
	0x4F: keyevent.KeyCodeDpadRight,
	0x50: keyevent.KeyCodeDpadLeft,
	0x51: keyevent.KeyCodeDpadDown,
	0x52: keyevent.KeyCodeDpadUp,
	0x65: keyevent.KeyCodeMenu,
	0x66: keyevent.KeyCodePower,
	0x7F: keyevent.KeyCodeVolumeMute,
	0x80: keyevent.KeyCodeVolumeUp,
	0x81: keyevent.KeyCodeVolumeDown,
	0xE0: keyevent.KeyCodeCtrlLeft,
	0xE1: keyevent.KeyCodeShiftLeft,
	0xE2: keyevent.KeyCodeAltLeft,
	0xE3: keyevent.KeyCodeMetaLeft,
	0xE4: keyevent.KeyCodeCtrlRight,
	0xE5: keyevent.KeyCodeShiftRight,
	0xE6: keyevent.KeyCodeAltRight,
	0xE7: keyevent.KeyCodeMetaRight,
}

// AndroidKeyCode maps a keyboard page usage to an Android key code.
// Unmapped usages return KEYCODE_UNKNOWN.
func AndroidKeyCode(usage byte) int {
	switch {
	case usage >= 0x04 && usage <= 0x1D: // a..z
		return keyevent.KeyCodeA + int(usage-0x04)
	case usage >= 0x1E && usage <= 0x26: // 1..9
		return keyevent.KeyCode0 + 1 + int(usage-0x1E)
	case usage == 0x27: // 0
		return keyevent.KeyCode0
	case usage >= 0x3A && usage <= 0x45: // F1..F12
		return keyevent.KeyCodeF1 + int(usage-0x3A)
	}
	if code, ok := usageToKeyCode[usage]; ok {
		return code
	}
	return keyevent.KeyCodeUnknown
}
