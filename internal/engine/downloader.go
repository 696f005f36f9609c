package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	internallog "github.com/ytmdl-ng/ytmdl/internal/log"
	"github.com/ytmdl-ng/ytmdl/internal/repair"
)

// ServerEnsurer is the slice of the server supervisor the downloader
// needs. Its failure is never fatal to a download.
type ServerEnsurer interface {
	EnsureRunning(ctx context.Context) error
}

// Options control one download call.
type Options struct {
	// AutoFix runs config repair on the resolved profile first.
	AutoFix bool

	// MaxRetries is the number of additional attempts after a failure,
	// so up to MaxRetries+1 attempts run in total.
	MaxRetries int

	// RetryDelay is the fixed pause before each retry.
	RetryDelay time.Duration
}

// Downloader runs the engine for a single URL with the full coordination
// flow around it.
type Downloader struct {
	layout   *config.Layout
	server   ServerEnsurer
	runner   Runner
	probe    Runner
	repairer *repair.Repairer
	logger   *slog.Logger
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithRunner replaces the engine subprocess runner.
func WithRunner(r Runner) DownloaderOption {
	return func(d *Downloader) {
		d.runner = r
	}
}

// WithProbeRunner replaces the quiet runner used for interpreter probes.
func WithProbeRunner(r Runner) DownloaderOption {
	return func(d *Downloader) {
		d.probe = r
	}
}

// NewDownloader creates a Downloader for the installation at layout.
func NewDownloader(layout *config.Layout, server ServerEnsurer, logger *slog.Logger, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		layout: layout,
		server: server,
		runner: &ExecRunner{},
		probe:  QuietRunner(),
		logger: logger,
	}
	d.repairer = repair.NewRepairer(
		repair.WithBackup(layout.BackupDir()),
		repair.WithLogger(logger),
	)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download downloads one URL using the named profile and returns the
// process exit code: 0 on success, the engine's last exit code after
// exhausting retries, 1 for missing prerequisites.
func (d *Downloader) Download(ctx context.Context, rawURL, profile string, opts Options) int {
	// Server trouble degrades the download (the engine may still have a
	// cached token) but never aborts it.
	d.logger.Info("checking PO token server...")
	if err := d.server.EnsureRunning(ctx); err != nil {
		d.logger.Warn("PO token server unavailable", "error", err)
	}

	configPath := d.layout.ProfilePath(profile)
	if !config.ProfileExists(d.layout, profile) {
		d.logger.Error("profile not found", "path", configPath)
		d.listProfiles()
		return 1
	}

	if opts.AutoFix {
		if result := d.repairer.Apply(configPath); result.Fixed {
			d.logger.Info("auto-fixed config", "fixes", result.Applied)
		}
	}

	python, err := ResolveInterpreter(ctx, d.layout, d.probe, d.logger)
	if err != nil {
		d.logger.Error(err.Error())
		return 1
	}

	internallog.Success(d.logger, "using profile: "+profile)
	d.logger.Info("downloading: " + rawURL)

	cmd := Command{
		Path: python,
		Args: []string{"-m", engineModule, "--config-path", configPath, rawURL},
		// Relative paths inside the profile resolve against the
		// installation root.
		Dir: d.layout.Root(),
		Env: []string{"PYTHONIOENCODING=utf-8"},
	}

	delay := opts.RetryDelay
	if delay <= 0 {
		// NewConstant rejects non-positive intervals.
		delay = time.Nanosecond
	}

	// A negative count would sign-convert into an effectively unbounded
	// retry budget; treat it as "no retries".
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	attempts := 0
	lastCode := 0
	backoff := retry.WithMaxRetries(uint64(maxRetries), retry.NewConstant(delay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		if attempts > 1 {
			d.logger.Warn(fmt.Sprintf("retry attempt %d/%d...", attempts-1, maxRetries))
		}

		code, runErr := d.runner.Run(ctx, cmd)
		if runErr != nil {
			lastCode = 1
			return retry.RetryableError(runErr)
		}
		if code != 0 {
			lastCode = code
			return retry.RetryableError(fmt.Errorf("engine exited with code %d", code))
		}
		lastCode = 0
		return nil
	})
	if err != nil {
		d.logger.Error(fmt.Sprintf("download failed after %d attempts", attempts))
		return lastCode
	}
	return 0
}

// listProfiles logs the discoverable profiles as a remediation aid when a
// profile name did not resolve.
func (d *Downloader) listProfiles() {
	profiles, err := config.DiscoverProfiles(d.layout)
	if err != nil || len(profiles) == 0 {
		return
	}
	d.logger.Info("available profiles:")
	for _, p := range profiles {
		d.logger.Info("  - " + p)
	}
}
