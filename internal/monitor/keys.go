package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HopIT-Hub/keyrelay/keyevent"
)

var specialKeys = map[tea.KeyType]int{
	tea.KeyEnter:     keyevent.KeyCodeEnter,
	tea.KeyTab:       keyevent.KeyCodeTab,
	tea.KeyBackspace: keyevent.KeyCodeDel,
	tea.KeyDelete:    keyevent.KeyCodeForwardDel,
	tea.KeyEsc:       keyevent.KeyCodeEscape,
	tea.KeySpace:     keyevent.KeyCodeSpace,
	tea.KeyUp:        keyevent.KeyCodeDpadUp,
	tea.KeyDown:      keyevent.KeyCodeDpadDown,
	tea.KeyLeft:      keyevent.KeyCodeDpadLeft,
	tea.KeyRight:     keyevent.KeyCodeDpadRight,
	tea.KeyHome:      keyevent.KeyCodeMoveHome,
	tea.KeyEnd:       keyevent.KeyCodeMoveEnd,
	tea.KeyPgUp:      keyevent.KeyCodePageUp,
	tea.KeyPgDown:    keyevent.KeyCodePageDown,
	tea.KeyInsert:    keyevent.KeyCodeInsert,
}

var functionKeys = []tea.KeyType{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5, tea.KeyF6,
	tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10, tea.KeyF11, tea.KeyF12,
}

// rawFromKey converts a terminal key message into a raw key-down event.
// Pasted text and multi-rune input become ACTION_MULTIPLE events with an
// unknown key code and the text in Characters. ok is false for keys that
// have no Android equivalent.
func rawFromKey(msg tea.KeyMsg) (raw keyevent.Raw, ok bool) {
	raw.Action = keyevent.ActionDown

	if msg.Type == tea.KeyRunes {
		if msg.Paste || len(msg.Runes) > 1 {
			raw.Action = keyevent.ActionMultiple
			raw.KeyCode = keyevent.KeyCodeUnknown
			raw.Characters = string(msg.Runes)
			return raw, len(msg.Runes) > 0
		}
		if len(msg.Runes) == 0 {
			return raw, false
		}
		r := msg.Runes[0]
		raw.UnicodeChar = r
		if code, _, found := keyevent.CodeForRune(r); found {
			raw.KeyCode = code
		}
		return raw, true
	}

	if code, found := specialKeys[msg.Type]; found {
		raw.KeyCode = code
		raw.UnicodeChar = keyevent.Char(code, false)
		return raw, true
	}
	for i, k := range functionKeys {
		if msg.Type == k {
			raw.KeyCode = keyevent.KeyCodeF1 + i
			return raw, true
		}
	}
	// Remaining control keys arrive as ctrl+letter; no character is produced.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		raw.KeyCode = keyevent.KeyCodeA + int(msg.Type-tea.KeyCtrlA)
		return raw, true
	}
	return raw, false
}

// upFor returns the key-up event paired with a terminal key-down.
// Terminals report no releases, so the monitor synthesizes one.
func upFor(down keyevent.Raw) keyevent.Raw {
	up := down
	up.Action = keyevent.ActionUp
	up.RepeatCount = 0
	return up
}
