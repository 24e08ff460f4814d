// keyrelay: relay key-down and key-up events from host input sources to a
// single registered listener per event kind.
//
// Sources:
//   - Global hotkeys (default: Ctrl+Alt+R), configurable from Settings
//   - A boot-protocol USB keyboard read directly over libusb
//   - A Linux evdev keyboard
//   - The terminal, in monitor mode
//   - POST /inject on the local settings server
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HopIT-Hub/keyrelay/internal/hotkey"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "keyrelay",
		Short:   "Relay key events to registered listeners",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(configPath(cmd))
		},
	}
	root.PersistentFlags().String("config", "", "config file path (default: user config dir)")

	root.AddCommand(
		trayCmd(),
		monitorCmd(),
		keysCmd(),
	)
	return root
}

func configPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("config")
	return p
}

func trayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run in the system tray (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(configPath(cmd))
		},
	}
}

func monitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show delivered key events in the terminal",
		Long: "Relays keys typed into the terminal and any configured USB or evdev\n" +
			"keyboard, and renders every delivered event. Logs go to --log.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logPath, _ := cmd.Flags().GetString("log")
			withHotkeys, _ := cmd.Flags().GetBool("hotkeys")
			return runMonitor(configPath(cmd), logPath, withHotkeys)
		},
	}
	cmd.Flags().String("log", "keyrelay.log", "file to write logs to while the monitor owns the terminal")
	cmd.Flags().Bool("hotkeys", false, "also register the configured global hotkeys")
	return cmd
}

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key and modifier names accepted in bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "modifiers: %s\n", strings.Join(hotkey.ModifierNames(), ", "))
			fmt.Fprintf(out, "keys:      %s\n", strings.Join(hotkey.KeyNames(), ", "))
			return nil
		},
	}
}
