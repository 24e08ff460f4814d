//go:build !linux

package linuxinput

import (
	"context"
	"errors"

	"github.com/HopIT-Hub/keyrelay/internal/relay"
)

// ErrUnsupported is returned on platforms without evdev.
var ErrUnsupported = errors.New("linuxinput: evdev is only available on linux")

// Source is unavailable on this platform.
type Source struct{}

// New creates a Source that always fails to run.
func New(*relay.Relay, string) *Source {
	return &Source{}
}

// Run returns ErrUnsupported.
func (s *Source) Run(context.Context) error {
	return ErrUnsupported
}

// FindKeyboard returns ErrUnsupported.
func FindKeyboard() (string, error) {
	return "", ErrUnsupported
}
