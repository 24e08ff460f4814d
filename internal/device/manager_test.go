package device

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

type fakeKeyboard struct {
	reports chan []byte
	closed  chan struct{}
}

func newFakeKeyboard() *fakeKeyboard {
	return &fakeKeyboard{reports: make(chan []byte), closed: make(chan struct{})}
}

func (k *fakeKeyboard) ReadReport(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-k.reports:
		if !ok {
			return nil, errors.New("device gone")
		}
		return r, nil
	}
}

func (k *fakeKeyboard) Close() { close(k.closed) }

type events struct {
	mu    sync.Mutex
	downs []keyevent.Data
	ups   []keyevent.Data
}

func (e *events) counts() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.downs), len(e.ups)
}

func setup(t *testing.T, open Opener) (*Manager, *events, chan State) {
	t.Helper()
	r, err := relay.New(relay.NewLifecycle())
	if err != nil {
		t.Fatal(err)
	}
	ev := &events{}
	r.OnKeyDown(func(d keyevent.Data) {
		ev.mu.Lock()
		ev.downs = append(ev.downs, d)
		ev.mu.Unlock()
	})
	r.OnKeyUp(func(d keyevent.Data) {
		ev.mu.Lock()
		ev.ups = append(ev.ups, d)
		ev.mu.Unlock()
	})
	states := make(chan State, 10)
	m := NewManager(r, open, func(s State) { states <- s })
	m.pollInterval = 10 * time.Millisecond
	return m, ev, states
}

func expectState(t *testing.T, states <-chan State, want State) {
	t.Helper()
	select {
	case s := <-states:
		if s != want {
			t.Fatalf("state = %s, want %s", s, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for state %s", want)
	}
}

func waitCounts(t *testing.T, ev *events, downs, ups int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if d, u := ev.counts(); d == downs && u == ups {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	d, u := ev.counts()
	t.Fatalf("got %d downs / %d ups, want %d / %d", d, u, downs, ups)
}

func TestManagerDispatchesReports(t *testing.T) {
	kb := newFakeKeyboard()
	m, ev, states := setup(t, func() (Keyboard, error) { return kb, nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx)
	}()

	expectState(t, states, Connected)
	if m.State() != Connected {
		t.Errorf("State() = %s, want connected", m.State())
	}

	kb.reports <- []byte{0, 0, 0x04, 0, 0, 0, 0, 0}
	kb.reports <- []byte{0, 0, 0, 0, 0, 0, 0, 0}
	waitCounts(t, ev, 1, 1)

	ev.mu.Lock()
	down := ev.downs[0]
	ev.mu.Unlock()
	if down.KeyCode != keyevent.KeyCodeA || down.PressedKey != "a" || down.HasRepeat() {
		t.Errorf("unexpected down event: %v", down)
	}

	cancel()
	<-done
}

func TestManagerReleasesHeldKeysOnDisconnect(t *testing.T) {
	kb := newFakeKeyboard()
	var once sync.Once
	open := func() (Keyboard, error) {
		var k Keyboard
		err := errors.New("not present")
		once.Do(func() { k, err = kb, nil })
		return k, err
	}
	m, ev, states := setup(t, open)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	expectState(t, states, Connected)
	kb.reports <- []byte{0, 0, 0x05, 0, 0, 0, 0, 0}
	close(kb.reports)

	expectState(t, states, Disconnected)
	waitCounts(t, ev, 1, 1)

	select {
	case <-kb.closed:
	case <-time.After(time.Second):
		t.Error("keyboard was not closed")
	}
}

func TestManagerRetriesUntilPresent(t *testing.T) {
	kb := newFakeKeyboard()
	attempts := 0
	var mu sync.Mutex
	open := func() (Keyboard, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return nil, errors.New("not present")
		}
		return kb, nil
	}
	m, _, states := setup(t, open)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	expectState(t, states, Connected)
	mu.Lock()
	defer mu.Unlock()
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Disconnected, "disconnected"},
		{Connected, "connected"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
