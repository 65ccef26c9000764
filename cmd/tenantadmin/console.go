package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/tenantadmin/internal/management"
	"github.com/jask/tenantadmin/internal/tui"
)

var startLayout string

func newConsoleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive console (default)",
		RunE:  runConsole,
	}
	cmd.Flags().StringVar(&startLayout, "layout", string(management.LayoutGrid), "initial layout (grid, column)")
	return cmd
}

func runConsole(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, logCloser, err := newLogger(cfg, true)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser.Close()

	layout := management.LayoutGrid
	if startLayout != "" {
		if layout, err = management.ParseLayoutMode(startLayout); err != nil {
			return err
		}
	}
	loc, err := cfg.UI.Location()
	if err != nil {
		return err
	}

	backend, closer, err := openBackend(ctx, cfg)
	if err != nil {
		log.Error("open backend", "mode", cfg.Backend.Mode, "error", err)
		return err
	}
	defer closer.Close()

	console := management.NewConsole(backend,
		management.WithLogger(log.With("component", "console")),
		management.WithLocation(loc),
		management.WithLayout(layout),
	)
	app := tui.New(ctx, console, tui.Options{Logger: log, CurrencySymbol: cfg.UI.CurrencySymbol})
	log.Info("console started", "backend", cfg.Backend.Mode)
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
