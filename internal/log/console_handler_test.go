package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestConsoleHandler(t *testing.T) {
	// Color output is process-global in fatih/color; force it off so
	// assertions see plain tags regardless of the test environment.
	color.NoColor = true

	t.Run("info record renders INFO tag", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("checking PO token server...")

		got := buf.String()
		if !strings.HasPrefix(got, "[INFO] checking PO token server...") {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("success record renders SUCCESS tag", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		Success(logger, "using profile", "profile", "gytmdl")

		got := buf.String()
		if !strings.HasPrefix(got, "[SUCCESS] using profile") {
			t.Errorf("unexpected output: %q", got)
		}
		if !strings.Contains(got, "profile=gytmdl") {
			t.Errorf("expected attribute in output, got %q", got)
		}
	})

	t.Run("debug suppressed unless verbose", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}

		verbose := NewLogger(&buf, true)
		verbose.Debug("shown")
		if !strings.Contains(buf.String(), "[DEBUG] shown") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})

	t.Run("WithAttrs carries attributes to later records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, false).With("item", "https://a")

		logger.Warn("retrying")

		got := buf.String()
		if !strings.Contains(got, "item=https://a") {
			t.Errorf("expected bound attribute, got %q", got)
		}
	})
}
