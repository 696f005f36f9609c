package main

import (
	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	"github.com/ytmdl-ng/ytmdl/internal/engine"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a single URL through the gytmdl engine",
		Long: `Download runs the full flow for one URL: it makes sure the PO token
server is up, repairs known defects in the selected profile, and invokes
the engine, retrying on failure.

The exit code is 0 on success and the engine's exit code after the last
failed attempt otherwise.

Examples:
  # Download with the stock profile
  ytmdl download https://music.youtube.com/watch?v=abc123

  # Use a different profile from config/
  ytmdl download -p flac https://music.youtube.com/watch?v=abc123

  # Leave the profile untouched even if it has known defects
  ytmdl download --no-fix https://music.youtube.com/watch?v=abc123`,
		Args: cobra.ExactArgs(1),
		RunE: runDownloadCmd,
	}

	cmd.Flags().StringP("profile", "p", "",
		"Profile name under config/ (default from settings, normally \"gytmdl\")")
	cmd.Flags().Int("retries", config.DefaultMaxRetries,
		"Number of retry attempts after a failed download")
	cmd.Flags().Bool("no-fix", false,
		"Skip the automatic profile repair before downloading")

	return cmd
}

// runDownloadCmd executes the download command.
func runDownloadCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	profile, opts, err := downloadOptions(cmd, a.settings)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(a.logger)
	defer cancel()

	downloader := engine.NewDownloader(a.layout, a.supervisor, a.logger)
	if code := downloader.Download(ctx, args[0], profile, opts); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// downloadOptions resolves the profile and per-download options from
// flags, falling back to the settings file values.
func downloadOptions(cmd *cobra.Command, settings *config.Settings) (string, engine.Options, error) {
	profile, err := cmd.Flags().GetString("profile")
	if err != nil {
		return "", engine.Options{}, err
	}
	if profile == "" {
		profile = settings.DefaultProfile
	}

	retries := settings.MaxRetries
	if cmd.Flags().Changed("retries") {
		retries, err = cmd.Flags().GetInt("retries")
		if err != nil {
			return "", engine.Options{}, err
		}
	}

	noFix, err := cmd.Flags().GetBool("no-fix")
	if err != nil {
		return "", engine.Options{}, err
	}

	return profile, engine.Options{
		AutoFix:    !noFix,
		MaxRetries: retries,
		RetryDelay: settings.RetryDelay,
	}, nil
}
