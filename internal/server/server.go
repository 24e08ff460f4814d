// Package server provides the local HTTP server for the settings UI and
// the synthetic key injection endpoint.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/HopIT-Hub/keyrelay/internal/autostart"
	"github.com/HopIT-Hub/keyrelay/internal/config"
	"github.com/HopIT-Hub/keyrelay/internal/device"
	"github.com/HopIT-Hub/keyrelay/internal/hotkey"
	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/internal/web"
)

// Hotkeys registers and removes global hotkey bindings.
type Hotkeys interface {
	Register(hotkey.Binding) error
	Unregister(key string)
}

// DeviceState reports the USB keyboard connection state.
type DeviceState interface {
	State() device.State
}

// Server serves the settings UI on localhost.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	relay      *relay.Relay
	hotkeys    Hotkeys
	usb        DeviceState // nil when the USB source is disabled
	cfg        *config.Config
	version    string

	setAutoStart func(enabled bool) error
}

// New creates a settings server. usb may be nil.
func New(r *relay.Relay, hotkeys Hotkeys, usb DeviceState, cfg *config.Config, version string) *Server {
	return &Server{
		relay:        r,
		hotkeys:      hotkeys,
		usb:          usb,
		cfg:          cfg,
		version:      version,
		setAutoStart: applyAutoStart,
	}
}

func applyAutoStart(enabled bool) error {
	if enabled {
		return autostart.Enable()
	}
	return autostart.Disable()
}

// Handler returns the server's routes.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// Serve embedded static files
	staticFS, err := fs.Sub(web.StaticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Settings page
	mux.HandleFunc("/", s.handleIndex)

	// API endpoints
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/bindings", s.handleBindings)
	mux.HandleFunc("/inject", s.handleInject)
	mux.HandleFunc("/autostart", s.handleAutoStart)
	return mux, nil
}

// Start begins serving on a random localhost port.
// Returns the URL to open in the browser.
func (s *Server) Start() (string, error) {
	h, err := s.Handler()
	if err != nil {
		return "", err
	}

	// Bind to random localhost port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[server] error: %v", err)
		}
	}()

	url := fmt.Sprintf("http://%s", ln.Addr().String())
	log.Printf("[server] settings available at %s", url)
	return url, nil
}

// Stop shuts down the HTTP server.
func (s *Server) Stop() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// URL returns the server's URL, or empty string if not started.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.listener.Addr().String())
}
