package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	"github.com/ytmdl-ng/ytmdl/internal/engine"
	"github.com/ytmdl-ng/ytmdl/internal/model"
	"github.com/ytmdl-ng/ytmdl/internal/report"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Download every URL in a list file, one at a time",
		Long: `Batch reads a newline-delimited URL list and runs the single download
flow for each entry in file order. Blank lines and lines starting with
'#' are skipped.

A summary with per-line failure details is printed at the end. The exit
code is 0 only when every attempted item succeeded.

Examples:
  # Download a playlist export
  ytmdl batch urls.txt

  # Stop at the first failure instead of continuing
  ytmdl batch --continue-on-error=false urls.txt

  # Also write the summary to a file (.md and .json choose the format)
  ytmdl batch -o report.md urls.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().StringP("profile", "p", "",
		"Profile name under config/ (default from settings, normally \"gytmdl\")")
	cmd.Flags().Int("retries", config.DefaultMaxRetries,
		"Number of retry attempts per failed item")
	cmd.Flags().Bool("no-fix", false,
		"Skip the automatic profile repair before downloading")
	cmd.Flags().Bool("continue-on-error", true,
		"Keep going past failed items")
	cmd.Flags().StringP("output", "o", "",
		"Also write the summary to this file (creates directories if needed)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write the summary file in Markdown regardless of its extension")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	profile, opts, err := downloadOptions(cmd, a.settings)
	if err != nil {
		return err
	}

	continueOnError, err := cmd.Flags().GetBool("continue-on-error")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(a.logger)
	defer cancel()

	downloader := engine.NewDownloader(a.layout, a.supervisor, a.logger)
	batch := engine.NewBatch(downloader, a.supervisor, a.logger, os.Stdout)

	result, err := batch.Run(ctx, args[0], profile, engine.BatchOptions{
		ContinueOnError: continueOnError,
		Download:        opts,
	})
	if err != nil {
		return err
	}

	if err := outputSummary(cmd, result); err != nil {
		return err
	}

	if code := result.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// outputSummary prints the terminal summary and optionally writes it to
// the requested file, choosing the format by flag or file extension.
func outputSummary(cmd *cobra.Command, result *model.BatchResult) error {
	if _, err := report.NewSimpleWriter(os.Stdout).Write(result); err != nil {
		return err
	}

	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outPath == "" {
		return nil
	}

	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	dir := filepath.Dir(outPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := summaryWriter(f, outPath, markdown)
	if _, err := w.Write(result); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// summaryWriter picks the file summary format: --markdown forces
// Markdown, otherwise the extension decides (.md/.markdown, .json),
// with plain text as the fallback.
func summaryWriter(f *os.File, path string, markdown bool) report.Writer {
	if markdown {
		return report.NewMarkdownWriter(f)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return report.NewMarkdownWriter(f)
	case ".json":
		return report.NewJSONWriter(f, report.WithPrettyPrint())
	default:
		return report.NewSimpleWriter(f, report.WithShowEmpty(true))
	}
}
