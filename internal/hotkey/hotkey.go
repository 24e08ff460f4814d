package hotkey

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.design/x/hotkey"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// autoRepeatWindow is how long a key-up is held back on X11 to detect
// auto-repeat key-up/key-down pairs.
const autoRepeatWindow = 50 * time.Millisecond

// Binding is a global hotkey to watch.
type Binding struct {
	Modifiers []string
	Key       string
}

func (b Binding) String() string {
	parts := make([]string, 0, len(b.Modifiers)+1)
	for _, m := range b.Modifiers {
		parts = append(parts, strings.ToLower(m))
	}
	parts = append(parts, strings.ToLower(b.Key))
	return strings.Join(parts, "+")
}

type registration struct {
	binding Binding
	hk      *hotkey.Hotkey
	cancel  context.CancelFunc
	done    chan struct{}
}

// Manager registers global hotkeys and dispatches their key-down and key-up
// transitions into a relay.
type Manager struct {
	relay      *relay.Relay
	autoRepeat bool // X11 delivers auto-repeat as key-up/key-down pairs

	mu   sync.Mutex
	regs map[string]*registration // by lowercased key name
}

// NewManager creates a hotkey manager feeding r.
func NewManager(r *relay.Relay) *Manager {
	return &Manager{
		relay:      r,
		autoRepeat: runtime.GOOS == "linux",
		regs:       make(map[string]*registration),
	}
}

// Register sets up a global hotkey. A binding for the same key is
// unregistered first.
func (m *Manager) Register(b Binding) error {
	mods, err := ParseModifiers(b.Modifiers)
	if err != nil {
		return fmt.Errorf("parse modifiers: %w", err)
	}
	key, err := ParseKey(b.Key)
	if err != nil {
		return fmt.Errorf("parse key: %w", err)
	}
	code, err := lookup(b.Key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := strings.ToLower(b.Key)
	m.unregisterLocked(name)

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", b, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	reg := &registration{binding: b, hk: hk, cancel: cancel, done: make(chan struct{})}
	m.regs[name] = reg

	raw := keyevent.Raw{KeyCode: code, UnicodeChar: keyevent.Char(code, hasShift(b.Modifiers))}
	go func() {
		defer close(reg.done)
		m.listen(ctx, raw, hk.Keydown(), hk.Keyup())
	}()

	log.Printf("[hotkey] registered: %s", b)
	return nil
}

// Replace unregisters every hotkey and registers bindings. All bindings are
// attempted; failures are returned joined.
func (m *Manager) Replace(bindings []Binding) error {
	m.UnregisterAll()
	var errs []error
	for _, b := range bindings {
		if err := m.Register(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bindings returns the registered bindings sorted by key.
func (m *Manager) Bindings() []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Binding, 0, len(m.regs))
	for _, r := range m.regs {
		out = append(out, r.binding)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// listen turns hotkey transitions into relay dispatches until ctx is done.
func (m *Manager) listen(ctx context.Context, raw keyevent.Raw, down, up <-chan hotkey.Event) {
	var (
		repeat  int
		pending *time.Timer
	)
	keyUp := func() {
		r := raw
		r.Action = keyevent.ActionUp
		m.relay.DispatchKeyUp(r)
	}

	for {
		select {
		case <-ctx.Done():
			if pending != nil && pending.Stop() {
				keyUp()
			}
			return
		case <-down:
			if pending != nil {
				stopped := pending.Stop()
				pending = nil
				if stopped {
					// The key-up was auto-repeat, not a release.
					repeat++
				} else {
					repeat = 0
				}
			} else {
				repeat = 0
			}
			r := raw
			r.Action = keyevent.ActionDown
			r.RepeatCount = repeat
			m.relay.DispatchKeyDown(r)
		case <-up:
			if m.autoRepeat {
				pending = time.AfterFunc(autoRepeatWindow, keyUp)
			} else {
				keyUp()
			}
		}
	}
}

// Unregister removes the hotkey bound to key, if any.
func (m *Manager) Unregister(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisterLocked(strings.ToLower(key))
}

// UnregisterAll removes every registered hotkey.
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range m.regs {
		m.unregisterLocked(name)
	}
}

func (m *Manager) unregisterLocked(name string) {
	reg, ok := m.regs[name]
	if !ok {
		return
	}
	delete(m.regs, name)
	reg.cancel()
	<-reg.done
	if err := reg.hk.Unregister(); err != nil {
		log.Printf("[hotkey] unregister %s: %v", reg.binding, err)
	}
}

func hasShift(mods []string) bool {
	for _, m := range mods {
		if strings.EqualFold(m, "shift") {
			return true
		}
	}
	return false
}
