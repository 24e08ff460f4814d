// Package tray manages the system tray icon and menu.
package tray

import (
	"strings"
	"sync"
	"time"

	"fyne.io/systray"

	"github.com/HopIT-Hub/keyrelay/internal/device"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// activeFlash is how long the icon shows key activity.
const activeFlash = 150 * time.Millisecond

// RunOpts configures the system tray.
type RunOpts struct {
	Version          string // app version string (e.g., "1.0.0")
	AutoStartEnabled bool   // initial state of "Start on Login" checkbox
	USBEnabled       bool   // whether a USB keyboard source is configured
	OnReady          func()
	OnSettings       func()
	OnAutoStart      func(enabled bool) // called when user toggles auto-start
	OnQuit           func()
}

var (
	mu         sync.Mutex
	statusItem *systray.MenuItem
	lastItem   *systray.MenuItem
	state      = device.Disconnected
	usbEnabled bool
	flash      *time.Timer
)

// Run starts the system tray. It blocks on the main thread.
func Run(opts RunOpts) {
	systray.Run(func() {
		mu.Lock()
		usbEnabled = opts.USBEnabled
		mu.Unlock()

		systray.SetIcon(idleIcon(device.Disconnected, opts.USBEnabled))
		systray.SetTitle("")
		systray.SetTooltip(tooltip(device.Disconnected, opts.USBEnabled))

		// Version label (disabled, informational)
		versionLabel := "keyrelay"
		if opts.Version != "" && opts.Version != "dev" {
			versionLabel += " v" + strings.TrimPrefix(opts.Version, "v")
		}
		mVersion := systray.AddMenuItem(versionLabel, "")
		mVersion.Disable()

		systray.AddSeparator()

		mSettings := systray.AddMenuItem("Settings...", "Configure hotkeys")
		mAutoStart := systray.AddMenuItemCheckbox("Start on Login", "Launch automatically on login", opts.AutoStartEnabled)

		systray.AddSeparator()

		mStatus := systray.AddMenuItem(statusTitle(device.Disconnected, opts.USBEnabled), "")
		mStatus.Disable()
		mLast := systray.AddMenuItem(lastKeyTitle(nil), "")
		mLast.Disable()

		systray.AddSeparator()

		mQuit := systray.AddMenuItem("Quit", "Exit keyrelay")

		mu.Lock()
		statusItem = mStatus
		lastItem = mLast
		mu.Unlock()

		if opts.OnReady != nil {
			opts.OnReady()
		}

		go func() {
			for {
				select {
				case <-mSettings.ClickedCh:
					if opts.OnSettings != nil {
						opts.OnSettings()
					}
				case <-mAutoStart.ClickedCh:
					if mAutoStart.Checked() {
						mAutoStart.Uncheck()
						if opts.OnAutoStart != nil {
							opts.OnAutoStart(false)
						}
					} else {
						mAutoStart.Check()
						if opts.OnAutoStart != nil {
							opts.OnAutoStart(true)
						}
					}
				case <-mQuit.ClickedCh:
					if opts.OnQuit != nil {
						opts.OnQuit()
					}
					systray.Quit()
				}
			}
		}()
	}, func() {
		// cleanup on systray exit
	})
}

// SetState updates the tray icon and tooltip based on USB keyboard state.
func SetState(s device.State) {
	mu.Lock()
	defer mu.Unlock()
	state = s
	systray.SetIcon(idleIcon(s, usbEnabled))
	systray.SetTooltip(tooltip(s, usbEnabled))
	if statusItem != nil {
		statusItem.SetTitle(statusTitle(s, usbEnabled))
	}
}

// SetLastKey shows a delivered event in the menu and briefly flashes the icon.
func SetLastKey(d keyevent.Data) {
	mu.Lock()
	defer mu.Unlock()
	if lastItem != nil {
		lastItem.SetTitle(lastKeyTitle(&d))
	}
	systray.SetIcon(IconActive)
	if flash != nil {
		flash.Stop()
	}
	flash = time.AfterFunc(activeFlash, func() {
		mu.Lock()
		defer mu.Unlock()
		systray.SetIcon(idleIcon(state, usbEnabled))
	})
}

// Quit stops the system tray.
func Quit() {
	systray.Quit()
}

func idleIcon(s device.State, usb bool) []byte {
	if usb && s == device.Disconnected {
		return IconDisconnected
	}
	return IconConnected
}

func tooltip(s device.State, usb bool) string {
	if usb && s == device.Disconnected {
		return "keyrelay: no USB keyboard"
	}
	return "keyrelay: ready"
}

func statusTitle(s device.State, usb bool) string {
	if !usb {
		return "USB keyboard: disabled"
	}
	switch s {
	case device.Connected:
		return "USB keyboard: connected"
	default:
		return "USB keyboard: disconnected"
	}
}

func lastKeyTitle(d *keyevent.Data) string {
	if d == nil {
		return "Last key: none"
	}
	key := keyevent.KeyCodeName(d.KeyCode)
	if d.PressedKey != "" && d.PressedKey != " " && len([]rune(d.PressedKey)) <= 16 {
		key += " " + `"` + d.PressedKey + `"`
	}
	return "Last key: " + key + " " + keyevent.ActionName(d.Action)
}
