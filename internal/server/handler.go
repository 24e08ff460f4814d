package server

import (
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/HopIT-Hub/keyrelay/internal/hotkey"
	"github.com/HopIT-Hub/keyrelay/internal/relay"
	"github.com/HopIT-Hub/keyrelay/internal/web"
	"github.com/HopIT-Hub/keyrelay/keyevent"
)

// handleIndex serves the settings page HTML.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	f, err := staticFS.Open("index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, f)
}

type bindingInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// statusResponse is the JSON response for GET /status.
type statusResponse struct {
	State     string        `json:"state"`
	Bindings  []bindingInfo `json:"bindings"`
	Relay     relay.Stats   `json:"relay"`
	Version   string        `json:"version"`
	AutoStart bool          `json:"auto_start"`
}

// handleStatus returns relay counters, USB state and the binding config.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := "disabled"
	if s.usb != nil {
		state = s.usb.State().String()
	}

	bindings := s.cfg.GetBindings()
	infos := make([]bindingInfo, 0, len(bindings))
	for _, b := range bindings {
		infos = append(infos, bindingInfo{Key: b.Key, Label: b.String()})
	}

	writeJSON(w, statusResponse{
		State:     state,
		Bindings:  infos,
		Relay:     s.relay.Stats(),
		Version:   s.version,
		AutoStart: s.cfg.GetAutoStart(),
	})
}

// bindingRequest is the JSON body for POST /bindings.
type bindingRequest struct {
	Modifiers []string `json:"modifiers"`
	JSCode    string   `json:"js_code"`
}

// bindingResponse is the JSON response for /bindings.
type bindingResponse struct {
	Hotkey string `json:"hotkey,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.addBinding(w, r)
	case http.MethodDelete:
		s.removeBinding(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// addBinding registers a hotkey and persists it.
func (s *Server) addBinding(w http.ResponseWriter, r *http.Request) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, bindingResponse{Error: "invalid JSON"})
		return
	}

	// Validate modifiers
	if len(req.Modifiers) == 0 {
		writeJSON(w, bindingResponse{Error: "at least one modifier required"})
		return
	}

	// Convert JS code to our key name
	keyName, err := hotkey.JSCodeToKeyName(req.JSCode)
	if err != nil {
		writeJSON(w, bindingResponse{Error: "unsupported key: " + req.JSCode})
		return
	}

	// Try to register the new hotkey
	b := hotkey.Binding{Modifiers: req.Modifiers, Key: keyName}
	if err := s.hotkeys.Register(b); err != nil {
		log.Printf("[server] hotkey register failed: %v", err)
		writeJSON(w, bindingResponse{Error: "failed to register hotkey: " + err.Error()})
		return
	}

	// Save to config
	if err := s.cfg.SetBinding(req.Modifiers, keyName); err != nil {
		log.Printf("[server] config save failed: %v", err)
		writeJSON(w, bindingResponse{Error: "registered hotkey but failed to persist config"})
		return
	}

	log.Printf("[server] hotkey added: %s", b)
	writeJSON(w, bindingResponse{Hotkey: b.String()})
}

// removeBinding unregisters the hotkey for ?key= and persists the change.
func (s *Server) removeBinding(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, bindingResponse{Error: "key required"})
		return
	}

	s.hotkeys.Unregister(key)
	removed, err := s.cfg.RemoveBinding(key)
	if err != nil {
		log.Printf("[server] config save failed: %v", err)
		writeJSON(w, bindingResponse{Error: "removed hotkey but failed to persist config"})
		return
	}
	if !removed {
		writeJSON(w, bindingResponse{Error: "no binding for key: " + key})
		return
	}

	log.Printf("[server] hotkey removed: %s", key)
	writeJSON(w, bindingResponse{Hotkey: key})
}

// injectRequest is the JSON body for POST /inject: a raw key event.
type injectRequest struct {
	Kind        string `json:"kind"` // "down" or "up"
	KeyCode     int    `json:"keyCode"`
	Action      *int   `json:"action"`
	UnicodeChar rune   `json:"unicodeChar"`
	Decoded     string `json:"decoded"`
	Characters  string `json:"characters"`
	RepeatCount int    `json:"repeatCount"`
}

// injectResponse is the JSON response for POST /inject.
type injectResponse struct {
	Relay relay.Stats `json:"relay"`
	Error string      `json:"error,omitempty"`
}

// handleInject dispatches a synthetic raw event into the relay.
func (s *Server) handleInject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req injectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, injectResponse{Error: "invalid JSON"})
		return
	}

	raw := keyevent.Raw{
		KeyCode:     req.KeyCode,
		UnicodeChar: req.UnicodeChar,
		Decoded:     req.Decoded,
		Characters:  req.Characters,
		RepeatCount: req.RepeatCount,
	}

	switch req.Kind {
	case "down":
		raw.Action = keyevent.ActionDown
		if req.Action != nil {
			raw.Action = *req.Action
		}
		s.relay.DispatchKeyDown(raw)
	case "up":
		raw.Action = keyevent.ActionUp
		if req.Action != nil {
			raw.Action = *req.Action
		}
		s.relay.DispatchKeyUp(raw)
	default:
		writeJSON(w, injectResponse{Error: `kind must be "down" or "up"`})
		return
	}

	writeJSON(w, injectResponse{Relay: s.relay.Stats()})
}

// autoStartRequest is the JSON body for POST /autostart.
type autoStartRequest struct {
	Enabled bool `json:"enabled"`
}

// autoStartResponse is the JSON response for POST /autostart.
type autoStartResponse struct {
	AutoStart bool   `json:"auto_start"`
	Error     string `json:"error,omitempty"`
}

// handleAutoStart toggles the auto-start on login setting.
func (s *Server) handleAutoStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req autoStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, autoStartResponse{Error: "invalid JSON"})
		return
	}

	if err := s.setAutoStart(req.Enabled); err != nil {
		log.Printf("[server] set autostart: %v", err)
		writeJSON(w, autoStartResponse{Error: "failed to change auto-start: " + err.Error()})
		return
	}

	// Persist to config
	if err := s.cfg.SetAutoStart(req.Enabled); err != nil {
		log.Printf("[server] save autostart config: %v", err)
		writeJSON(w, autoStartResponse{Error: "setting changed but failed to persist"})
		return
	}

	log.Printf("[server] auto-start: %v", req.Enabled)
	writeJSON(w, autoStartResponse{AutoStart: req.Enabled})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
