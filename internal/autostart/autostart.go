// Package autostart registers keyrelay to start its tray app on login.
// Each platform has its own implementation file.
package autostart

import (
	"os"
	"strings"
)

// launchArgs is the command line started on login.
func launchArgs() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return []string{exe, "tray"}, nil
}

// commandLine joins args for registries and desktop entries, quoting any
// argument that contains a space.
func commandLine(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}

// Sync makes the OS registration match enabled.
func Sync(enabled bool) error {
	if enabled == IsEnabled() {
		return nil
	}
	if enabled {
		return Enable()
	}
	return Disable()
}
