package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/ytmdl-ng/ytmdl/internal/model"
)

// MarkdownWriter outputs batch summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the batch summary in Markdown format.
func (w *MarkdownWriter) Write(result *model.BatchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeFailures(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the counts table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.BatchResult) {
	md.H1("Batch Download Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Total", strconv.Itoa(result.Total)},
			{"Succeeded", strconv.Itoa(result.Succeeded)},
			{"Failed", strconv.Itoa(result.Failed)},
			{"Status", w.statusText(result)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on the result state.
func (w *MarkdownWriter) statusText(result *model.BatchResult) string {
	if result.Interrupted {
		return "⚠️ Interrupted (partial results)"
	}
	if result.Failed > 0 {
		return "❌ Completed with failures"
	}
	return "✅ Complete"
}

// writeFailures writes the failed items table, if any.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, result *model.BatchResult) {
	if result.Failed == 0 {
		return
	}

	md.H2("Failed Items")
	md.PlainText("")

	rows := make([][]string, 0, len(result.Failures))
	for _, item := range result.Failures {
		rows = append(rows, []string{strconv.Itoa(item.Line), "`" + item.URL + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Line", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}
