package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
)

// NewProfilesCmd creates the profiles command.
func NewProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available download profiles",
		Long: `Profiles lists every profile under the config/ directory, with the
profiles/ subdirectory entries shown in their own group. Pass any listed
name to download or batch with -p.`,
		Args: cobra.NoArgs,
		RunE: runProfilesCmd,
	}
}

// runProfilesCmd executes the profiles command.
func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	names, err := config.DiscoverProfiles(a.layout)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(out, "No profiles found under %s\n", a.layout.ConfigDir())
		return nil
	}

	fmt.Fprintf(out, "Available profiles (%d):\n", len(names))
	lastGroup := ""
	for _, name := range names {
		group, base := config.SplitProfileName(name)
		if group != "" && group != lastGroup {
			fmt.Fprintf(out, "\n  %s/\n", group)
		}
		lastGroup = group

		if group == "" {
			fmt.Fprintf(out, "  %s\n", base)
		} else {
			fmt.Fprintf(out, "    %s\n", base)
		}
	}
	return nil
}
