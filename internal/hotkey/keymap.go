// Package hotkey turns desktop global hotkeys into key events for the relay.
// Each bound key reports key-down and key-up transitions.
package hotkey

import (
	"fmt"
	"sort"
	"strings"

	"golang.design/x/hotkey"

	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// ParseModifiers converts string modifier names to hotkey.Modifier values.
// The modMap variable is defined in platform-specific files (modmap_*.go).
func ParseModifiers(names []string) ([]hotkey.Modifier, error) {
	var mods []hotkey.Modifier
	for _, name := range names {
		m, ok := modMap[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown modifier: %q (available: ctrl, shift, alt, super)", name)
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// ModifierNames returns the modifier names accepted by ParseModifiers, sorted.
func ModifierNames() []string {
	names := make([]string, 0, len(modMap))
	for n := range modMap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseKey converts a string key name to a hotkey.Key value.
func ParseKey(name string) (hotkey.Key, error) {
	k, ok := keyMap[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown key: %q", name)
	}
	return k, nil
}

// JSCodeToKeyName converts a JavaScript event.code to our config key name.
// e.g., "KeyR" → "r", "F5" → "f5", "Space" → "space"
func JSCodeToKeyName(jsCode string) (string, error) {
	switch {
	case len(jsCode) == 4 && strings.HasPrefix(jsCode, "Key"):
		c := jsCode[3]
		if c >= 'A' && c <= 'Z' {
			return strings.ToLower(jsCode[3:]), nil
		}
	case len(jsCode) == 6 && strings.HasPrefix(jsCode, "Digit"):
		c := jsCode[5]
		if c >= '0' && c <= '9' {
			return jsCode[5:], nil
		}
	}
	name, ok := jsCodeToName[jsCode]
	if !ok {
		return "", fmt.Errorf("unsupported key code: %q", jsCode)
	}
	return name, nil
}

var jsCodeToName = map[string]string{
	"F1": "f1", "F2": "f2", "F3": "f3", "F4": "f4",
	"F5": "f5", "F6": "f6", "F7": "f7", "F8": "f8",
	"F9": "f9", "F10": "f10", "F11": "f11", "F12": "f12",
	"Space": "space", "Enter": "return", "Escape": "escape",
	"Backspace": "delete", "Tab": "tab",
	"ArrowUp": "up", "ArrowDown": "down",
	"ArrowLeft": "left", "ArrowRight": "right",
}

// KeyNames returns every key name accepted by ParseKey, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyMap))
	for n := range keyMap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var keyMap = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space": hotkey.KeySpace, "return": hotkey.KeyReturn, "escape": hotkey.KeyEscape,
	"delete": hotkey.KeyDelete, "tab": hotkey.KeyTab,
	"up": hotkey.KeyUp, "down": hotkey.KeyDown, "left": hotkey.KeyLeft, "right": hotkey.KeyRight,
}

var namedCodes = map[string]int{
	"space":  keyevent.KeyCodeSpace,
	"return": keyevent.KeyCodeEnter,
	"escape": keyevent.KeyCodeEscape,
	"delete": keyevent.KeyCodeDel,
	"tab":    keyevent.KeyCodeTab,
	"up":     keyevent.KeyCodeDpadUp,
	"down":   keyevent.KeyCodeDpadDown,
	"left":   keyevent.KeyCodeDpadLeft,
	"right":  keyevent.KeyCodeDpadRight,
}

// lookup resolves a key name to its Android key code.
func lookup(name string) (int, error) {
	name = strings.ToLower(name)
	if code, ok := namedCodes[name]; ok {
		return code, nil
	}
	if len(name) == 1 {
		if code, _, ok := keyevent.CodeForRune(rune(name[0])); ok {
			return code, nil
		}
	}
	if strings.HasPrefix(name, "f") {
		var n int
		if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 12 {
			return keyevent.KeyCodeF1 + n - 1, nil
		}
	}
	return 0, fmt.Errorf("no key code for %q", name)
}
