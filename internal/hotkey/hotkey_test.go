package hotkey

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.design/x/hotkey"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

type capture struct {
	mu    sync.Mutex
	downs []keyevent.Data
	ups   []keyevent.Data
}

func (c *capture) snapshot() (downs, ups []keyevent.Data) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]keyevent.Data(nil), c.downs...), append([]keyevent.Data(nil), c.ups...)
}

func newListener(t *testing.T, autoRepeat bool) (*Manager, *capture) {
	t.Helper()
	r, err := relay.New(relay.NewLifecycle())
	if err != nil {
		t.Fatal(err)
	}
	c := &capture{}
	r.OnKeyDown(func(d keyevent.Data) {
		c.mu.Lock()
		c.downs = append(c.downs, d)
		c.mu.Unlock()
	})
	r.OnKeyUp(func(d keyevent.Data) {
		c.mu.Lock()
		c.ups = append(c.ups, d)
		c.mu.Unlock()
	})
	m := NewManager(r)
	m.autoRepeat = autoRepeat
	return m, c
}

func run(t *testing.T, m *Manager, raw keyevent.Raw) (down, up chan hotkey.Event, stop func()) {
	t.Helper()
	down = make(chan hotkey.Event)
	up = make(chan hotkey.Event)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.listen(ctx, raw, down, up)
	}()
	return down, up, func() {
		cancel()
		<-done
	}
}

func waitFor(t *testing.T, c *capture, downs, ups int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d, u := c.snapshot()
		if len(d) == downs && len(u) == ups {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	d, u := c.snapshot()
	t.Fatalf("got %d downs / %d ups, want %d / %d", len(d), len(u), downs, ups)
}

func TestListenPressRelease(t *testing.T) {
	m, c := newListener(t, false)
	down, up, stop := run(t, m, keyevent.Raw{KeyCode: keyevent.KeyCodeA, UnicodeChar: 'a'})
	defer stop()

	down <- hotkey.Event{}
	up <- hotkey.Event{}
	waitFor(t, c, 1, 1)

	downs, ups := c.snapshot()
	if downs[0].Action != keyevent.ActionDown || downs[0].PressedKey != "a" || downs[0].HasRepeat() {
		t.Errorf("unexpected down: %v", downs[0])
	}
	if ups[0].Action != keyevent.ActionUp || ups[0].HasRepeat() {
		t.Errorf("unexpected up: %v", ups[0])
	}
}

func TestListenAutoRepeatCountsRepeats(t *testing.T) {
	m, c := newListener(t, true)
	down, up, stop := run(t, m, keyevent.Raw{KeyCode: keyevent.KeyCodeR, UnicodeChar: 'r'})
	defer stop()

	// X11 auto-repeat: down, then up/down pairs inside the window.
	down <- hotkey.Event{}
	up <- hotkey.Event{}
	down <- hotkey.Event{}
	up <- hotkey.Event{}
	down <- hotkey.Event{}
	waitFor(t, c, 3, 0)

	up <- hotkey.Event{}
	waitFor(t, c, 3, 1)

	downs, _ := c.snapshot()
	for i, want := range []int{0, 1, 2} {
		if downs[i].Repeat() != want {
			t.Errorf("down %d repeat = %d, want %d", i, downs[i].Repeat(), want)
		}
	}
}

func TestListenAutoRepeatNewPressResets(t *testing.T) {
	m, c := newListener(t, true)
	down, up, stop := run(t, m, keyevent.Raw{KeyCode: keyevent.KeyCodeR})
	defer stop()

	down <- hotkey.Event{}
	up <- hotkey.Event{}
	waitFor(t, c, 1, 1)

	down <- hotkey.Event{}
	waitFor(t, c, 2, 1)

	downs, _ := c.snapshot()
	if downs[1].HasRepeat() {
		t.Errorf("fresh press carried repeat %d", downs[1].Repeat())
	}
}

func TestListenFlushesPendingUpOnStop(t *testing.T) {
	m, c := newListener(t, true)
	down, up, stop := run(t, m, keyevent.Raw{KeyCode: keyevent.KeyCodeR})

	down <- hotkey.Event{}
	up <- hotkey.Event{}
	stop()
	waitFor(t, c, 1, 1)
}

func TestParseKey(t *testing.T) {
	for _, name := range []string{"a", "Z", "0", "f5", "F12", "space", "return", "left"} {
		if _, err := ParseKey(name); err != nil {
			t.Errorf("ParseKey(%q): %v", name, err)
		}
	}
	if _, err := ParseKey("hyper"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestParseModifiers(t *testing.T) {
	mods, err := ParseModifiers([]string{"Ctrl", "alt", "shift", "super"})
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) != 4 {
		t.Errorf("got %d modifiers, want 4", len(mods))
	}
	if _, err := ParseModifiers([]string{"meta"}); err == nil {
		t.Error("expected error for unknown modifier")
	}
}

func TestEveryKeyNameHasKeyCode(t *testing.T) {
	for _, name := range KeyNames() {
		code, err := lookup(name)
		if err != nil {
			t.Errorf("lookup(%q): %v", name, err)
			continue
		}
		if code == keyevent.KeyCodeUnknown {
			t.Errorf("lookup(%q) = UNKNOWN", name)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"a", keyevent.KeyCodeA},
		{"R", keyevent.KeyCodeA + 17},
		{"0", keyevent.KeyCode0},
		{"f", keyevent.KeyCodeA + 5},
		{"f1", keyevent.KeyCodeF1},
		{"f12", keyevent.KeyCodeF12},
		{"space", keyevent.KeyCodeSpace},
		{"delete", keyevent.KeyCodeDel},
		{"up", keyevent.KeyCodeDpadUp},
	}
	for _, tt := range tests {
		got, err := lookup(tt.name)
		if err != nil {
			t.Errorf("lookup(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("lookup(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestJSCodeToKeyName(t *testing.T) {
	tests := []struct {
		code    string
		want    string
		wantErr bool
	}{
		{"KeyR", "r", false},
		{"Digit7", "7", false},
		{"F5", "f5", false},
		{"Space", "space", false},
		{"Enter", "return", false},
		{"Backspace", "delete", false},
		{"ArrowLeft", "left", false},
		{"Keyr", "", true},
		{"NumpadEnter", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := JSCodeToKeyName(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBindingString(t *testing.T) {
	b := Binding{Modifiers: []string{"Ctrl", "Alt"}, Key: "R"}
	if got := b.String(); got != "ctrl+alt+r" {
		t.Errorf("String() = %q, want %q", got, "ctrl+alt+r")
	}
}
