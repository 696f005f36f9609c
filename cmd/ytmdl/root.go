// Package main provides the entry point for the ytmdl CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ytmdl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ytmdl",
		Short: "Command line front end for the gytmdl download engine",
		Long: `ytmdl wraps the gytmdl YouTube Music downloader with the plumbing a
download session needs: it repairs known configuration defects, keeps the
PO token server running, and retries failed downloads.

The installation root (the directory holding config/, bgutil-pot-provider/
and the Python virtual environment) defaults to the directory of the
running executable. Override it with --root or a settings file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("root", "r", "", "Installation root (default: directory of the executable)")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Settings file path (default: .ytmdl.yaml in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewDownloadCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewServerCmd())
	cmd.AddCommand(NewProfilesCmd())
	cmd.AddCommand(NewFixAllCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// exitError carries a specific process exit code through cobra's error
// path without printing anything; the command has already reported the
// failure to the user.
type exitError struct {
	code int
}

// Error implements the error interface.
func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command.
func Execute() {
	// "?" is an accepted help alias.
	args := make([]string, len(os.Args)-1)
	copy(args, os.Args[1:])
	for i, a := range args {
		if a == "?" {
			args[i] = "help"
		}
	}

	cmd := NewRootCmd()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
