package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	internallog "github.com/ytmdl-ng/ytmdl/internal/log"
	"github.com/ytmdl-ng/ytmdl/internal/repair"
)

// NewFixAllCmd creates the fix-all command.
func NewFixAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-all",
		Short: "Repair known defects in every profile",
		Long: `Fix-all runs the configuration repair over every profile under config/:
the legacy aria2c download mode is removed and the unsupported year
placeholder is stripped from folder templates. A backup of each changed
profile is written to backups/configs/ first.

Repair is best effort: unreadable or malformed profiles are skipped with
a warning.`,
		Args: cobra.NoArgs,
		RunE: runFixAllCmd,
	}
}

// runFixAllCmd executes the fix-all command.
func runFixAllCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	names, err := config.DiscoverProfiles(a.layout)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(names) == 0 {
		a.logger.Warn("no profiles found", "dir", a.layout.ConfigDir())
		return nil
	}

	repairer := repair.NewRepairer(
		repair.WithBackup(a.layout.BackupDir()),
		repair.WithLogger(a.logger),
	)

	fixed := 0
	for _, name := range names {
		result := repairer.Apply(a.layout.ProfilePath(name))
		if result.Fixed {
			fixed++
			internallog.Success(a.logger, "fixed "+name, "applied", result.Applied)
		} else {
			a.logger.Info("already clean: " + name)
		}
	}

	internallog.Success(a.logger, fmt.Sprintf("checked %d profile(s), fixed %d", len(names), fixed))
	return nil
}
