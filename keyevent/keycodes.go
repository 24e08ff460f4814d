package keyevent

import "strconv"

// Key codes (android.view.KeyEvent.KEYCODE_*). Only the codes produced by
// the adapters in this module are named; any other value passes through.
const (
	KeyCodeUnknown      = 0
	KeyCodeHome         = 3
	KeyCodeBack         = 4
	KeyCode0            = 7
	KeyCode9            = 16
	KeyCodeDpadUp       = 19
	KeyCodeDpadDown     = 20
	KeyCodeDpadLeft     = 21
	KeyCodeDpadRight    = 22
	KeyCodeVolumeUp     = 24
	KeyCodeVolumeDown   = 25
	KeyCodePower        = 26
	KeyCodeA            = 29
	KeyCodeZ            = 54
	KeyCodeComma        = 55
	KeyCodePeriod       = 56
	KeyCodeAltLeft      = 57
	KeyCodeAltRight     = 58
	KeyCodeShiftLeft    = 59
	KeyCodeShiftRight   = 60
	KeyCodeTab          = 61
	KeyCodeSpace        = 62
	KeyCodeEnter        = 66
	KeyCodeDel          = 67
	KeyCodeGrave        = 68
	KeyCodeMinus        = 69
	KeyCodeEquals       = 70
	KeyCodeLeftBracket  = 71
	KeyCodeRightBracket = 72
	KeyCodeBackslash    = 73
	KeyCodeSemicolon    = 74
	KeyCodeApostrophe   = 75
	KeyCodeSlash        = 76
	KeyCodeMenu         = 82
	KeyCodePageUp       = 92
	KeyCodePageDown     = 93
	KeyCodeEscape       = 111
	KeyCodeForwardDel   = 112
	KeyCodeCtrlLeft     = 113
	KeyCodeCtrlRight    = 114
	KeyCodeCapsLock     = 115
	KeyCodeMetaLeft     = 117
	KeyCodeMetaRight    = 118
	KeyCodeMoveHome     = 122
	KeyCodeMoveEnd      = 123
	KeyCodeInsert       = 124
	KeyCodeF1           = 131
	KeyCodeF12          = 142
	KeyCodeVolumeMute   = 164
)

var keyCodeNames = map[int]string{
	KeyCodeUnknown:      "UNKNOWN",
	KeyCodeHome:         "HOME",
	KeyCodeBack:         "BACK",
	KeyCodeDpadUp:       "DPAD_UP",
	KeyCodeDpadDown:     "DPAD_DOWN",
	KeyCodeDpadLeft:     "DPAD_LEFT",
	KeyCodeDpadRight:    "DPAD_RIGHT",
	KeyCodeVolumeUp:     "VOLUME_UP",
	KeyCodeVolumeDown:   "VOLUME_DOWN",
	KeyCodePower:        "POWER",
	KeyCodeComma:        "COMMA",
	KeyCodePeriod:       "PERIOD",
	KeyCodeAltLeft:      "ALT_LEFT",
	KeyCodeAltRight:     "ALT_RIGHT",
	KeyCodeShiftLeft:    "SHIFT_LEFT",
	KeyCodeShiftRight:   "SHIFT_RIGHT",
	KeyCodeTab:          "TAB",
	KeyCodeSpace:        "SPACE",
	KeyCodeEnter:        "ENTER",
	KeyCodeDel:          "DEL",
	KeyCodeGrave:        "GRAVE",
	KeyCodeMinus:        "MINUS",
	KeyCodeEquals:       "EQUALS",
	KeyCodeLeftBracket:  "LEFT_BRACKET",
	KeyCodeRightBracket: "RIGHT_BRACKET",
	KeyCodeBackslash:    "BACKSLASH",
	KeyCodeSemicolon:    "SEMICOLON",
	KeyCodeApostrophe:   "APOSTROPHE",
	KeyCodeSlash:        "SLASH",
	KeyCodeMenu:         "MENU",
	KeyCodePageUp:       "PAGE_UP",
	KeyCodePageDown:     "PAGE_DOWN",
	KeyCodeEscape:       "ESCAPE",
	KeyCodeForwardDel:   "FORWARD_DEL",
	KeyCodeCtrlLeft:     "CTRL_LEFT",
	KeyCodeCtrlRight:    "CTRL_RIGHT",
	KeyCodeCapsLock:     "CAPS_LOCK",
	KeyCodeMetaLeft:     "META_LEFT",
	KeyCodeMetaRight:    "META_RIGHT",
	KeyCodeMoveHome:     "MOVE_HOME",
	KeyCodeMoveEnd:      "MOVE_END",
	KeyCodeInsert:       "INSERT",
	KeyCodeVolumeMute:   "VOLUME_MUTE",
}

// KeyCodeName returns the KEYCODE_ suffix for a key code.
func KeyCodeName(code int) string {
	switch {
	case code >= KeyCodeA && code <= KeyCodeZ:
		return string(rune('A' + code - KeyCodeA))
	case code >= KeyCode0 && code <= KeyCode9:
		return string(rune('0' + code - KeyCode0))
	case code >= KeyCodeF1 && code <= KeyCodeF12:
		return "F" + strconv.Itoa(code-KeyCodeF1+1)
	}
	if name, ok := keyCodeNames[code]; ok {
		return name
	}
	return strconv.Itoa(code)
}

// US-layout punctuation: key code → unshifted, shifted.
var punctuation = map[int][2]rune{
	KeyCodeComma:        {',', '<'},
	KeyCodePeriod:       {'.', '>'},
	KeyCodeGrave:        {'`', '~'},
	KeyCodeMinus:        {'-', '_'},
	KeyCodeEquals:       {'=', '+'},
	KeyCodeLeftBracket:  {'[', '{'},
	KeyCodeRightBracket: {']', '}'},
	KeyCodeBackslash:    {'\\', '|'},
	KeyCodeSemicolon:    {';', ':'},
	KeyCodeApostrophe:   {'\'', '"'},
	KeyCodeSlash:        {'/', '?'},
}

var shiftedDigits = []rune(")!@#$%^&*(")

// Char returns the character a key code produces on a US layout, or 0 for
// keys that produce none. Hosts that decode characters themselves should
// set Raw.UnicodeChar directly instead.
func Char(code int, shift bool) rune {
	switch {
	case code >= KeyCodeA && code <= KeyCodeZ:
		if shift {
			return rune('A' + code - KeyCodeA)
		}
		return rune('a' + code - KeyCodeA)
	case code >= KeyCode0 && code <= KeyCode9:
		if shift {
			return shiftedDigits[code-KeyCode0]
		}
		return rune('0' + code - KeyCode0)
	case code == KeyCodeSpace:
		return ' '
	case code == KeyCodeEnter:
		return '\n'
	case code == KeyCodeTab:
		return '\t'
	}
	if p, ok := punctuation[code]; ok {
		if shift {
			return p[1]
		}
		return p[0]
	}
	return 0
}

// CodeForRune returns the key code and shift state that produce r on a US
// layout. ok is false when no single key produces r.
func CodeForRune(r rune) (code int, shift bool, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyCodeA + int(r-'a'), false, true
	case r >= 'A' && r <= 'Z':
		return KeyCodeA + int(r-'A'), true, true
	case r >= '0' && r <= '9':
		return KeyCode0 + int(r-'0'), false, true
	case r == ' ':
		return KeyCodeSpace, false, true
	case r == '\n', r == '\r':
		return KeyCodeEnter, false, true
	case r == '\t':
		return KeyCodeTab, false, true
	}
	for i, d := range shiftedDigits {
		if d == r {
			return KeyCode0 + i, true, true
		}
	}
	for c, p := range punctuation {
		if p[0] == r {
			return c, false, true
		}
		if p[1] == r {
			return c, true, true
		}
	}
	return KeyCodeUnknown, false, false
}
