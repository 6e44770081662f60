package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/tgienger/dues/internal/config"
	"github.com/tgienger/dues/internal/logger"
	"github.com/tgienger/dues/internal/store"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("dues %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, logCloser, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	backend, closer, err := store.OpenBackend(cfg)
	if err != nil {
		log.WithError(err).WithField("backend", cfg.Backend).Error("open storage")
		return errors.Wrap(err, "initializing storage")
	}
	defer closer.Close()
	log.WithField("backend", cfg.Backend).Info("storage opened")

	manager := tracker.New(store.New(backend, log),
		tracker.WithLogger(log),
		tracker.WithOverdueDerivation(cfg.DeriveOverdue),
	)

	if len(args) > 0 {
		switch args[0] {
		case "export":
			return runExport(manager, args[1:], os.Stdout)
		case "seed":
			return runSeed(manager, os.Stdout)
		default:
			return errors.Errorf("unknown command %q (want export or seed)", args[0])
		}
	}

	// Create and run the application
	app := ui.NewApp(manager, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running application")
	}
	return nil
}
