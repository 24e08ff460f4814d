package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/HopIT-Hub/keyrelay/internal/monitor"
	"github.com/HopIT-Hub/keyrelay/internal/relay"
)

// runMonitor runs the terminal monitor until the user quits or a signal
// arrives. Logs are written to logPath so they don't corrupt the screen.
func runMonitor(cfgPath, logPath string, withHotkeys bool) error {
	f, err := tea.LogToFile(logPath, "")
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer f.Close()

	a, err := newApp(cfgPath, nil)
	if errors.Is(err, relay.ErrNoHost) {
		log.Fatalf("[keyrelay] %v", err)
	}
	if err != nil {
		return err
	}
	defer a.shutdown()

	sources := []string{"terminal"}
	if withHotkeys {
		a.registerHotkeys()
	}
	for _, s := range a.sourceNames() {
		if s != "hotkeys" || withHotkeys {
			sources = append(sources, s)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(monitor.New(a.relay, sources), tea.WithAltScreen(), tea.WithMouseCellMotion())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})
	g.Go(func() error {
		return a.runSources(ctx)
	})

	log.Printf("[keyrelay] monitor started (sources: %v)", sources)
	return g.Wait()
}
