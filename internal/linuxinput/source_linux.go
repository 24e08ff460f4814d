//go:build linux

package linuxinput

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/holoplot/go-evdev"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// Source reads one evdev keyboard and dispatches into a relay.
type Source struct {
	relay *relay.Relay
	path  string // empty = first keyboard found
}

// New creates a Source. An empty path selects the first keyboard.
func New(r *relay.Relay, path string) *Source {
	return &Source{relay: r, path: path}
}

// Run opens the device and dispatches key events until ctx is cancelled or
// the device fails. Cancellation is not an error.
func (s *Source) Run(ctx context.Context) error {
	path := s.path
	if path == "" {
		p, err := FindKeyboard()
		if err != nil {
			return err
		}
		path = p
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w (try running as root or add user to 'input' group)", path, err)
	}
	name, _ := dev.Name()
	log.Printf("[linuxinput] reading %s (%s)", path, name)

	// ReadOne blocks; closing the device unblocks it on cancellation.
	stop := context.AfterFunc(ctx, func() { dev.Close() })
	defer func() {
		if stop() {
			dev.Close()
		}
	}()

	tr := NewTranslator()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", path, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		raw, ok := tr.Translate(uint16(ev.Code), ev.Value)
		if !ok {
			continue
		}
		if raw.Action == keyevent.ActionDown {
			s.relay.DispatchKeyDown(raw)
		} else {
			s.relay.DispatchKeyUp(raw)
		}
	}
}

// FindKeyboard returns the path of the first evdev device that reports key
// and repeat events and calls itself a keyboard.
func FindKeyboard() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("listing devices: %w", err)
	}
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		types := dev.CapableTypes()
		name, nameErr := dev.Name()
		dev.Close()

		if !slices.Contains(types, evdev.EV_KEY) || !slices.Contains(types, evdev.EV_REP) {
			continue
		}
		if nameErr != nil || !strings.Contains(strings.ToLower(name), "keyboard") {
			continue
		}
		return p.Path, nil
	}
	return "", errors.New("no keyboard found")
}
