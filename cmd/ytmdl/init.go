package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
)

//go:embed templates/ytmdl.yaml
var settingsTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file template",
		Long: `Init creates a .ytmdl.yaml settings file in the current directory.

The generated file documents every available setting with its default,
commented out. Settings files are optional; ytmdl works without one.

Examples:
  # Create .ytmdl.yaml in the current directory
  ytmdl init

  # Create the file at a specific path
  ytmdl init -o ~/.ytmdl.yaml

  # Force overwrite an existing file
  ytmdl init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.SettingsFileName,
		"Output file path for the settings template")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing settings file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("settings file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := settingsTemplate.ReadFile("templates/ytmdl.yaml")
	if err != nil {
		return fmt.Errorf("failed to read settings template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created settings file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEvery setting is optional; uncomment the ones you want to change.")
	return nil
}
