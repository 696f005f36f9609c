package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	internallog "github.com/ytmdl-ng/ytmdl/internal/log"
	"github.com/ytmdl-ng/ytmdl/internal/server"
)

// app bundles the objects every command needs: resolved settings, the
// installation layout, the logger, and the PO token server supervisor.
type app struct {
	settings   *config.Settings
	layout     *config.Layout
	logger     *slog.Logger
	prober     *server.Prober
	supervisor *server.Supervisor
}

// newApp builds the shared command context from flags and the optional
// settings file.
func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := buildSettings(cmd)
	if err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := internallog.NewLogger(os.Stdout, getVerboseFlag(cmd))
	layout := config.NewLayout(settings.Root)
	prober := server.NewProber(nil, settings.PingURL(), settings.PingTimeout)
	supervisor := server.NewSupervisor(layout, prober, logger,
		server.WithStartWait(settings.StartWait))

	return &app{
		settings:   settings,
		layout:     layout,
		logger:     logger,
		prober:     prober,
		supervisor: supervisor,
	}, nil
}

// buildSettings layers the optional settings file and flags over the
// defaults.
//
// If the user explicitly specified a settings file path, a missing file
// is an error. Without an explicit path, absence is fine and the
// defaults stand.
func buildSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings := config.NewSettings()

	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicit := cfgPath != ""
	found := config.FindSettingsFile(cfgPath)
	if found != "" {
		if err := settings.LoadSettingsFile(found); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", found, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("settings file not found: %s", cfgPath)
	}

	// The --root flag wins over the settings file.
	rootFlag, err := cmd.Flags().GetString("root")
	if err != nil {
		return nil, err
	}
	if rootFlag != "" {
		settings.Root = rootFlag
	}

	return settings, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// signalContext returns a context cancelled by SIGINT or SIGTERM, so the
// download loops stop after the current item.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, finishing current item...")
		cancel()
	}()

	return ctx, cancel
}
