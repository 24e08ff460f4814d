package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HopIT-Hub/keyrelay/internal/config"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

func TestRootCmd(t *testing.T) {
	root := rootCmd()

	if root.Use != "keyrelay" {
		t.Errorf("root Use = %q, want %q", root.Use, "keyrelay")
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Fatal("missing --config persistent flag")
	}

	subs := map[string]bool{}
	for _, sub := range root.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"tray", "monitor", "keys"} {
		if !subs[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestMonitorFlags(t *testing.T) {
	root := rootCmd()
	for _, sub := range root.Commands() {
		if sub.Name() != "monitor" {
			continue
		}
		for _, name := range []string{"log", "hotkeys"} {
			if sub.Flags().Lookup(name) == nil {
				t.Errorf("monitor: missing --%s flag", name)
			}
		}
		return
	}
	t.Fatal("missing monitor subcommand")
}

func TestKeysCmd(t *testing.T) {
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"keys"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"modifiers: alt, ctrl, shift, super", "f12", "space"} {
		if !strings.Contains(got, want) {
			t.Errorf("keys output missing %q:\n%s", want, got)
		}
	}
}

func TestNewApp(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	a, err := newApp(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.usb != nil {
		t.Error("usb source should be disabled by default")
	}
	if a.usbState() != nil {
		t.Error("usbState() should be a nil interface when disabled")
	}
	if got := a.sourceNames(); len(got) != 1 || got[0] != "hotkeys" {
		t.Errorf("sourceNames() = %v", got)
	}

	var got []keyevent.Data
	a.relay.OnKeyDown(func(d keyevent.Data) { got = append(got, d) })
	a.relay.DispatchKeyDown(keyevent.Raw{KeyCode: keyevent.KeyCodeA, UnicodeChar: 'a'})
	a.shutdown()
	a.relay.DispatchKeyDown(keyevent.Raw{KeyCode: keyevent.KeyCodeA, UnicodeChar: 'a'})
	if len(got) != 1 {
		t.Errorf("got %d events, want 1 (shutdown should silence the relay)", len(got))
	}
}

func TestNewAppWithUSB(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadFrom(p)
	if err != nil {
		t.Fatal(err)
	}
	cfg.USB = config.USBConfig{Enabled: true, VendorID: 0x046d, ProductID: 0xc31c}
	cfg.Evdev = config.EvdevConfig{Enabled: true}
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	a, err := newApp(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.usbState() == nil {
		t.Error("usb source should be enabled")
	}
	if got := strings.Join(a.sourceNames(), ","); got != "hotkeys,usb,evdev" {
		t.Errorf("sourceNames() = %s", got)
	}
}

func TestNewAppInvalidConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadFrom(p)
	if err != nil {
		t.Fatal(err)
	}
	cfg.USB.Enabled = true
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := newApp(p, nil); err == nil {
		t.Error("expected error for usb without ids")
	}
}
