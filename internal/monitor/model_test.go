package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

func newModel(t *testing.T, host relay.Host) (Model, *relay.Relay) {
	t.Helper()
	r, err := relay.New(host)
	if err != nil {
		t.Fatal(err)
	}
	m := New(r, nil)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return m, r
}

func drain(m Model) []keyevent.Data {
	var out []keyevent.Data
	for {
		select {
		case d := <-m.events:
			out = append(out, d)
		default:
			return out
		}
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRawFromKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		ok     bool
		code   int
		action int
		char   rune
		chars  string
	}{
		{"letter", runes("a"), true, keyevent.KeyCodeA, keyevent.ActionDown, 'a', ""},
		{"upper", runes("Z"), true, keyevent.KeyCodeZ, keyevent.ActionDown, 'Z', ""},
		{"digit", runes("7"), true, keyevent.KeyCode0 + 7, keyevent.ActionDown, '7', ""},
		{"non-ascii", runes("é"), true, keyevent.KeyCodeUnknown, keyevent.ActionDown, 'é', ""},
		{"multi rune", runes("ab"), true, keyevent.KeyCodeUnknown, keyevent.ActionMultiple, 0, "ab"},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Paste: true}, true, keyevent.KeyCodeUnknown, keyevent.ActionMultiple, 0, "x"},
		{"empty runes", runes(""), false, 0, 0, 0, ""},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true, keyevent.KeyCodeEnter, keyevent.ActionDown, '\n', ""},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true, keyevent.KeyCodeSpace, keyevent.ActionDown, ' ', ""},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, true, keyevent.KeyCodeEscape, keyevent.ActionDown, 0, ""},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, true, keyevent.KeyCodeDpadLeft, keyevent.ActionDown, 0, ""},
		{"f5", tea.KeyMsg{Type: tea.KeyF5}, true, keyevent.KeyCodeF1 + 4, keyevent.ActionDown, 0, ""},
		{"ctrl+r", tea.KeyMsg{Type: tea.KeyCtrlR}, true, keyevent.KeyCodeA + 17, keyevent.ActionDown, 0, ""},
		{"unmapped", tea.KeyMsg{Type: tea.KeyShiftTab}, false, 0, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := rawFromKey(tt.msg)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if raw.KeyCode != tt.code || raw.Action != tt.action || raw.UnicodeChar != tt.char || raw.Characters != tt.chars {
				t.Errorf("got %+v", raw)
			}
		})
	}
}

func TestTerminalKeyDispatchesDownThenUp(t *testing.T) {
	m, r := newModel(t, relay.NewLifecycle())

	updated, _ := m.Update(runes("q"))
	model := updated.(Model)

	got := drain(model)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Action != keyevent.ActionDown || got[1].Action != keyevent.ActionUp {
		t.Errorf("actions = %d,%d, want down,up", got[0].Action, got[1].Action)
	}
	for _, d := range got {
		if d.KeyCode != keyevent.KeyCodeA+16 || d.PressedKey != "q" || d.HasRepeat() {
			t.Errorf("unexpected record %v", d)
		}
	}
	if s := r.Stats(); s.Delivered != 2 {
		t.Errorf("delivered = %d, want 2", s.Delivered)
	}
	if model.stats.Delivered != 2 {
		t.Errorf("model stats delivered = %d, want 2", model.stats.Delivered)
	}
}

func TestPasteDispatchesMultiple(t *testing.T) {
	m, _ := newModel(t, relay.NewLifecycle())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo"), Paste: true})
	got := drain(updated.(Model))

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	d := got[0]
	if d.Action != keyevent.ActionMultiple || d.KeyCode != keyevent.KeyCodeUnknown || d.PressedKey != "héllo" {
		t.Errorf("unexpected record %v", d)
	}
}

func TestInactiveHostSuppresses(t *testing.T) {
	lc := relay.NewLifecycle()
	lc.Deactivate()
	m, _ := newModel(t, lc)

	updated, _ := m.Update(runes("a"))
	model := updated.(Model)

	if got := drain(model); len(got) != 0 {
		t.Errorf("got %d events while inactive, want 0", len(got))
	}
	if model.stats.Suppressed != 2 {
		t.Errorf("suppressed = %d, want 2", model.stats.Suppressed)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newModel(t, relay.NewLifecycle())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if got := drain(m); len(got) != 0 {
		t.Errorf("ctrl+c should not be relayed, got %d events", len(got))
	}
}

func TestCtrlLTogglesFollow(t *testing.T) {
	m, _ := newModel(t, relay.NewLifecycle())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if updated.(Model).log.follow {
		t.Error("follow should be off after ctrl+l")
	}
}

func TestEventMsgAppendsLine(t *testing.T) {
	m, _ := newModel(t, relay.NewLifecycle())
	n := 3
	d := keyevent.Data{KeyCode: keyevent.KeyCodeA, Action: keyevent.ActionDown, PressedKey: "a", RepeatCount: &n}

	updated, cmd := m.Update(eventMsg(d))
	model := updated.(Model)

	if cmd == nil {
		t.Error("event should produce a command to wait for more events")
	}
	if model.last == nil || !model.last.data.Equal(d) {
		t.Errorf("last = %v, want %v", model.last, d)
	}
	if len(model.log.lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(model.log.lines))
	}
	line := model.log.lines[0]
	for _, want := range []string{"03:04:05.000", "down", "A(29)", `"a"`, "repeat=3"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan keyevent.Data, 1)
	ch <- keyevent.Data{KeyCode: 7}
	msg := waitForEvent(ch)()
	if d, ok := msg.(eventMsg); !ok || d.KeyCode != 7 {
		t.Errorf("msg = %#v", msg)
	}
}

func TestLogViewBounded(t *testing.T) {
	v := newLogView(80, 10)
	for i := 0; i < maxLines+5; i++ {
		v = v.appendLine("x")
	}
	if len(v.lines) != maxLines {
		t.Errorf("lines = %d, want %d", len(v.lines), maxLines)
	}
}

func TestView(t *testing.T) {
	m, _ := newModel(t, relay.NewLifecycle())
	m.sources = []string{"terminal", "evdev"}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model := updated.(Model)

	if model.width != 120 || model.height != 30 {
		t.Errorf("size = %dx%d, want 120x30", model.width, model.height)
	}
	view := model.View()
	for _, want := range []string{"keyrelay monitor", "terminal, evdev", "last: none", "ctrl+c quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
