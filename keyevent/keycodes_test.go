package keyevent

import "testing"

func TestKeyCodeName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{KeyCodeA, "A"},
		{KeyCodeZ, "Z"},
		{KeyCode0, "0"},
		{KeyCodeF1, "F1"},
		{KeyCodeF12, "F12"},
		{KeyCodeSpace, "SPACE"},
		{KeyCodeUnknown, "UNKNOWN"},
		{9999, "9999"},
	}

	for _, tt := range tests {
		if got := KeyCodeName(tt.code); got != tt.want {
			t.Errorf("KeyCodeName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCharAndCodeForRuneAgree(t *testing.T) {
	for _, r := range "azAZ09 !@,<./?`~-_=+[]{}\\|;:'\"\t\n" {
		code, shift, ok := CodeForRune(r)
		if !ok {
			t.Errorf("CodeForRune(%q): not found", r)
			continue
		}
		if got := Char(code, shift); got != r {
			t.Errorf("Char(CodeForRune(%q)) = %q", r, got)
		}
	}
}

func TestCharNone(t *testing.T) {
	for _, code := range []int{KeyCodeDpadUp, KeyCodeEscape, KeyCodeF1, KeyCodeShiftLeft} {
		if got := Char(code, false); got != 0 {
			t.Errorf("Char(%s) = %q, want 0", KeyCodeName(code), got)
		}
	}
}

func TestCodeForRuneUnknown(t *testing.T) {
	if _, _, ok := CodeForRune('é'); ok {
		t.Error("expected no key for 'é'")
	}
}
