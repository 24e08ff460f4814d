// Package config handles loading and saving the keyrelay configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Config holds the application configuration.
type Config struct {
	mu        sync.RWMutex `json:"-"`
	path      string
	Bindings  []Binding   `json:"bindings"`
	USB       USBConfig   `json:"usb"`
	Evdev     EvdevConfig `json:"evdev"`
	AutoStart bool        `json:"auto_start"`
}

// Binding defines a global hotkey whose presses are relayed.
type Binding struct {
	Modifiers []string `json:"modifiers"` // "ctrl", "shift", "alt", "super"
	Key       string   `json:"key"`       // "r", "space", "f5", etc.
}

// String returns a human-readable representation like "Ctrl+Alt+R".
func (b Binding) String() string {
	s := ""
	for _, m := range b.Modifiers {
		switch strings.ToLower(m) {
		case "ctrl":
			s += "Ctrl+"
		case "shift":
			s += "Shift+"
		case "alt":
			s += "Alt+"
		case "super":
			s += "Super+"
		}
	}
	if len(b.Key) == 1 {
		s += strings.ToUpper(b.Key)
	} else {
		s += b.Key
	}
	return s
}

// USBConfig selects a boot-protocol USB keyboard to read directly.
type USBConfig struct {
	Enabled   bool   `json:"enabled"`
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
	Serial    string `json:"serial,omitempty"` // empty = any serial
}

// EvdevConfig selects a Linux input device to read.
type EvdevConfig struct {
	Enabled bool   `json:"enabled"`
	Device  string `json:"device,omitempty"` // empty = first keyboard found
}

var validModifiers = []string{"ctrl", "shift", "alt", "super"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bindings: []Binding{
			{Modifiers: []string{"ctrl", "alt"}, Key: "r"},
		},
	}
}

// Dir returns the OS-appropriate config directory for keyrelay.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "keyrelay"), nil
}

// Path returns the full path to the default config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(p)
}

// LoadFrom reads the config at path. If the file doesn't exist, it creates
// a default config and saves it there. Later saves go to the same path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = path
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("create default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig() // start with defaults so new fields get populated
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem in the config.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs []error
	seen := make(map[string]bool)
	for i, b := range c.Bindings {
		key := strings.ToLower(b.Key)
		if key == "" {
			errs = append(errs, fmt.Errorf("bindings[%d]: key is empty", i))
		} else if seen[key] {
			errs = append(errs, fmt.Errorf("bindings[%d]: key %q bound twice", i, b.Key))
		}
		seen[key] = true
		for _, m := range b.Modifiers {
			if !slices.Contains(validModifiers, strings.ToLower(m)) {
				errs = append(errs, fmt.Errorf("bindings[%d]: unknown modifier %q", i, m))
			}
		}
	}
	if c.USB.Enabled && (c.USB.VendorID == 0 || c.USB.ProductID == 0) {
		errs = append(errs, errors.New("usb: vendor_id and product_id are required when enabled"))
	}
	return errors.Join(errs...)
}

// Save writes the config to disk atomically (write temp, rename).
func (c *Config) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	p := c.path
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if p == "" {
		if p, err = Path(); err != nil {
			return err
		}
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// GetBindings returns a copy of the configured bindings.
func (c *Config) GetBindings() []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Binding, len(c.Bindings))
	for i, b := range c.Bindings {
		out[i] = Binding{Modifiers: slices.Clone(b.Modifiers), Key: b.Key}
	}
	return out
}

// SetBinding adds a binding, replacing any binding for the same key, and
// saves to disk.
func (c *Config) SetBinding(mods []string, key string) error {
	c.mu.Lock()
	b := Binding{Modifiers: slices.Clone(mods), Key: key}
	i := c.indexLocked(key)
	if i >= 0 {
		c.Bindings[i] = b
	} else {
		c.Bindings = append(c.Bindings, b)
	}
	c.mu.Unlock()
	return c.Save()
}

// RemoveBinding deletes the binding for key and saves to disk. It reports
// whether a binding was removed.
func (c *Config) RemoveBinding(key string) (bool, error) {
	c.mu.Lock()
	i := c.indexLocked(key)
	if i < 0 {
		c.mu.Unlock()
		return false, nil
	}
	c.Bindings = slices.Delete(c.Bindings, i, i+1)
	c.mu.Unlock()
	return true, c.Save()
}

func (c *Config) indexLocked(key string) int {
	return slices.IndexFunc(c.Bindings, func(b Binding) bool {
		return strings.EqualFold(b.Key, key)
	})
}

// GetUSB returns the USB keyboard settings.
func (c *Config) GetUSB() USBConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.USB
}

// GetEvdev returns the evdev settings.
func (c *Config) GetEvdev() EvdevConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Evdev
}

// GetAutoStart returns the current auto-start setting.
func (c *Config) GetAutoStart() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AutoStart
}

// SetAutoStart updates the auto-start setting and saves to disk.
func (c *Config) SetAutoStart(enabled bool) error {
	c.mu.Lock()
	c.AutoStart = enabled
	c.mu.Unlock()
	return c.Save()
}
