package main

import (
	"context"
	"errors"
	"log"

	"github.com/HopIT-Hub/keyrelay/internal/autostart"
	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/internal/server"
	"github.com/HopIT-Hub/keyrelay/internal/tray"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// runTray runs the system tray app. It blocks on the main thread.
func runTray(cfgPath string) error {
	a, err := newApp(cfgPath, tray.SetState)
	if errors.Is(err, relay.ErrNoHost) {
		log.Fatalf("[keyrelay] %v", err)
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	logAndShow := func(d keyevent.Data) {
		log.Printf("[keyrelay] %s", d)
		tray.SetLastKey(d)
	}
	a.relay.OnKeyDown(logAndShow)
	a.relay.OnKeyUp(logAndShow)

	// Settings HTTP server
	srv := server.New(a.relay, a.hotkeys, a.usbState(), a.cfg, version)

	// System tray, blocks on main thread
	tray.Run(tray.RunOpts{
		Version:          version,
		AutoStartEnabled: a.cfg.GetAutoStart(),
		USBEnabled:       a.usb != nil,

		// onReady: start background services after tray is initialized
		OnReady: func() {
			go a.runSources(ctx)

			a.registerHotkeys()

			if err := autostart.Sync(a.cfg.GetAutoStart()); err != nil {
				log.Printf("[keyrelay] sync autostart: %v", err)
			}

			// Start settings server
			if _, err := srv.Start(); err != nil {
				log.Printf("[keyrelay] settings server: %v", err)
			}

			log.Printf("[keyrelay] ready (version %s, sources: %v)", version, a.sourceNames())
		},

		// onSettings: open browser to settings page
		OnSettings: func() {
			url := srv.URL()
			if url == "" {
				log.Println("[keyrelay] settings server not running")
				return
			}
			openBrowser(url)
		},

		// onAutoStart: toggle auto-start on login
		OnAutoStart: func(enabled bool) {
			if err := autostart.Sync(enabled); err != nil {
				log.Printf("[keyrelay] set autostart: %v", err)
				return
			}
			if err := a.cfg.SetAutoStart(enabled); err != nil {
				log.Printf("[keyrelay] save autostart config: %v", err)
			}
			log.Printf("[keyrelay] auto-start: %v", enabled)
		},

		// onQuit: clean shutdown
		OnQuit: func() {
			cancel()
			a.shutdown()
			srv.Stop()
		},
	})
	return nil
}
