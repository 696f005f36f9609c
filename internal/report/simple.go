package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ytmdl-ng/ytmdl/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display at the end of a batch run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. The per-item progress output already carries the colored log tags
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether the failure section is shown when
	// nothing failed.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show the failure section even
// when it is empty.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the batch summary in human-readable format.
func (w *SimpleWriter) Write(result *model.BatchResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeFailures(&sb, result)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the summary banner with the overall counts.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.BatchResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	if result.Interrupted {
		sb.WriteString(fmt.Sprintf("Batch download interrupted: %d/%d successful\n",
			result.Succeeded, result.Total))
	} else {
		sb.WriteString(fmt.Sprintf("Batch download finished: %d/%d successful\n",
			result.Succeeded, result.Total))
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// writeFailures lists the failed items by original line number.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, result *model.BatchResult) {
	if result.Failed == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(fmt.Sprintf("\nFailed items (%d):\n", result.Failed))
	for _, item := range result.Failures {
		sb.WriteString(fmt.Sprintf("  Line %d: %s\n", item.Line, item.URL))
	}
}
