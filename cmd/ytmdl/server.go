package main

import (
	"github.com/spf13/cobra"
)

// NewServerCmd creates the server command.
func NewServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start or restart the PO token server",
		Long: `Server makes sure a healthy PO token server instance is running.

A running, responding instance is left alone. A node process that stopped
answering the liveness endpoint is terminated and replaced. The spawned
server is detached from this process and keeps running after ytmdl exits;
its output goes to the state directory log file.

The download and batch commands do this automatically; the standalone
command exists for warming up the server ahead of a session or recovering
it by hand.`,
		Args: cobra.NoArgs,
		RunE: runServerCmd,
	}
}

// runServerCmd executes the server command.
func runServerCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(a.logger)
	defer cancel()

	return a.supervisor.EnsureRunning(ctx)
}
