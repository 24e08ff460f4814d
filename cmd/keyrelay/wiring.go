package main

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/HopIT-Hub/keyrelay/internal/config"
	"github.com/HopIT-Hub/keyrelay/internal/device"
	"github.com/HopIT-Hub/keyrelay/internal/hotkey"
	"github.com/HopIT-Hub/keyrelay/internal/linuxinput"
	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/internal/server"
)

// app holds the relay and every source feeding it.
type app struct {
	cfg       *config.Config
	lifecycle *relay.Lifecycle
	relay     *relay.Relay
	hotkeys   *hotkey.Manager
	usb       *device.Manager // nil when disabled
}

// newApp loads the config and builds the relay and its sources. onUSB is
// called on USB keyboard state changes.
func newApp(cfgPath string, onUSB func(device.State)) (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgPath != "" {
		cfg, err = config.LoadFrom(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	lc := relay.NewLifecycle()
	r, err := relay.New(lc)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		lifecycle: lc,
		relay:     r,
		hotkeys:   hotkey.NewManager(r),
	}

	if usb := cfg.GetUSB(); usb.Enabled {
		a.usb = device.NewManager(r, device.USBOpener(usb.VendorID, usb.ProductID, usb.Serial), func(s device.State) {
			log.Printf("[keyrelay] usb keyboard: %s", s)
			if onUSB != nil {
				onUSB(s)
			}
		})
	}
	return a, nil
}

// sourceNames lists the enabled sources for display.
func (a *app) sourceNames() []string {
	names := []string{"hotkeys"}
	if a.usb != nil {
		names = append(names, "usb")
	}
	if a.cfg.GetEvdev().Enabled {
		names = append(names, "evdev")
	}
	return names
}

// registerHotkeys binds every configured hotkey. Failures are logged; the
// remaining bindings stay registered.
func (a *app) registerHotkeys() {
	bindings := a.cfg.GetBindings()
	hb := make([]hotkey.Binding, len(bindings))
	for i, b := range bindings {
		hb[i] = hotkey.Binding(b)
	}
	if err := a.hotkeys.Replace(hb); err != nil {
		log.Printf("[keyrelay] hotkey register failed: %v", err)
		log.Printf("[keyrelay] you can change hotkeys via Settings")
	}
	for _, b := range a.hotkeys.Bindings() {
		log.Printf("[keyrelay] hotkey: %s", b)
	}
}

// runSources runs the USB and evdev sources until ctx is cancelled. A source
// that fails is logged and does not stop the others.
func (a *app) runSources(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if a.usb != nil {
		g.Go(func() error {
			a.usb.Run(ctx)
			return nil
		})
	}
	if ev := a.cfg.GetEvdev(); ev.Enabled {
		g.Go(func() error {
			if err := linuxinput.New(a.relay, ev.Device).Run(ctx); err != nil {
				log.Printf("[keyrelay] evdev: %v", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// usbState returns the USB manager as a server.DeviceState, or nil.
func (a *app) usbState() server.DeviceState {
	if a.usb == nil {
		return nil
	}
	return a.usb
}

// shutdown silences the relay and releases hotkeys.
func (a *app) shutdown() {
	a.lifecycle.Deactivate()
	a.hotkeys.UnregisterAll()
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default: // linux, bsd
		cmd = "xdg-open"
		args = []string{url}
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		log.Printf("[keyrelay] open browser: %v", err)
	}
}
