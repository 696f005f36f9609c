package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// LevelSuccess is a custom log level for operations that completed
// successfully. It sits between Info and Warn so that a handler filtering
// at Info still shows success lines, while one filtering at Warn does not.
const LevelSuccess = slog.LevelInfo + 2

// levelTags maps levels to the bracketed tags printed before each message.
var levelTags = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	LevelSuccess:    "SUCCESS",
	slog.LevelWarn:  "WARN",
	slog.LevelError: "ERROR",
}

// levelColors maps levels to the colors used for their tags.
// The mapping mirrors the tool's historical output: cyan for info,
// green for success, yellow for warnings, red for errors.
var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgHiBlack),
	slog.LevelInfo:  color.New(color.FgCyan),
	LevelSuccess:    color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed),
}

// ConsoleHandler is an slog.Handler that writes human-oriented tagged lines.
//
// Design decision: We implement a handler rather than free log functions so
// the rest of the codebase logs through the standard *slog.Logger API and
// tests can swap in any other handler.
type ConsoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

// NewConsoleHandler creates a ConsoleHandler writing to w that discards
// records below level.
func NewConsoleHandler(w io.Writer, level slog.Level) *ConsoleHandler {
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes the record as a single tagged line.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	tag, ok := levelTags[r.Level]
	if !ok {
		tag = r.Level.String()
	}
	if c, ok := levelColors[r.Level]; ok {
		b.WriteString("[" + c.Sprint(tag) + "]")
	} else {
		b.WriteString("[" + tag + "]")
	}
	b.WriteString(" ")
	b.WriteString(r.Message)

	appendAttr := func(a slog.Attr) {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(fmt.Sprint(a.Value.Any()))
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler whose records carry the given attributes.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns the handler unchanged. Groups are flattened: the
// console format has no nesting, and none of the call sites use groups.
func (h *ConsoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// NewLogger creates a *slog.Logger backed by a ConsoleHandler.
// With verbose set, debug records are shown as well.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewConsoleHandler(w, level))
}

// Success logs msg at LevelSuccess.
func Success(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelSuccess, msg, args...)
}
