package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	internallog "github.com/ytmdl-ng/ytmdl/internal/log"
	"github.com/ytmdl-ng/ytmdl/internal/model"
)

// BatchOptions control one batch run.
type BatchOptions struct {
	// ContinueOnError keeps going past failed items. Off, the run stops
	// at the first failure (which still counts in the summary).
	ContinueOnError bool

	// Download are the per-item options.
	Download Options
}

// Batch runs the single-item download flow over a URL list, strictly in
// file order, one item at a time.
type Batch struct {
	downloader *Downloader
	server     ServerEnsurer
	logger     *slog.Logger
	out        io.Writer
}

// NewBatch creates a batch orchestrator. Progress banners go to out.
func NewBatch(downloader *Downloader, server ServerEnsurer, logger *slog.Logger, out io.Writer) *Batch {
	if out == nil {
		out = os.Stdout
	}
	return &Batch{
		downloader: downloader,
		server:     server,
		logger:     logger,
		out:        out,
	}
}

// Run processes the list file and returns the aggregated result. The only
// error is a missing list file (ErrListNotFound); everything else is
// folded into the result. Cancellation of ctx stops the loop after the
// current item and the partial result is still returned.
func (b *Batch) Run(ctx context.Context, listPath, profile string, opts BatchOptions) (*model.BatchResult, error) {
	f, err := os.Open(listPath) //nolint:gosec // user-provided list path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, listPath)
		}
		return nil, err
	}

	items, err := model.ParseWorkItems(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", listPath, err)
	}

	// One up-front supervisor call for the whole run. The per-item call
	// inside Download still happens and hits the healthy fast path.
	b.logger.Info("starting batch download...")
	if err := b.server.EnsureRunning(ctx); err != nil {
		b.logger.Warn("PO token server unavailable", "error", err)
	}

	result := model.NewBatchResult(len(items))
	if len(items) == 0 {
		b.logger.Warn("no URLs found", "file", listPath)
		return result, nil
	}
	b.logger.Info(fmt.Sprintf("found %d URL(s) to download", len(items)))

	for i, item := range items {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		fmt.Fprintf(b.out, "\n%s\n[%d/%d] Line %d: %s\n%s\n",
			strings.Repeat("=", 70), i+1, len(items), item.Line, truncate(item.URL, 60), strings.Repeat("=", 70))

		code := b.downloader.Download(ctx, item.URL, profile, opts.Download)

		if ctx.Err() != nil {
			// The in-flight engine process was cut short by the signal;
			// its exit code says nothing about the item.
			result.Interrupted = true
			b.logger.Warn("batch download interrupted by user")
			break
		}

		if code == 0 {
			result.AddSuccess()
			internallog.Success(b.logger, "downloaded: "+truncate(item.URL, 50))
			continue
		}

		result.AddFailure(item)
		b.logger.Error("failed to download: " + truncate(item.URL, 50))
		if !opts.ContinueOnError {
			break
		}
	}

	return result, nil
}

// truncate shortens s to n runes for one-line progress output. Cutting
// on rune boundaries keeps multi-byte URLs intact.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
