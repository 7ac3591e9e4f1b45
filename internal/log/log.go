// Package log builds the structured loggers used by the registry binaries.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LoggerConfig is a minimal, convenient set of options.
type LoggerConfig struct {
	Version string

	// If Out is nil, stderr is used.
	Out io.Writer

	Level slog.Level
	JSON  bool // true => JSON output, false => text
}

// NewLogger creates a configured *slog.Logger.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	hn, _ := os.Hostname()
	return slog.New(handler).With(
		slog.String("version", cfg.Version),
		slog.String("host", hn),
	)
}

// ParseLevel converts a level name (debug, info, warn, error) to slog.Level.
// An empty name selects info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// nopHandler is a tiny no-op slog.Handler.
type nopHandler struct{}

func (n *nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (n *nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (n *nopHandler) WithAttrs(attrs []slog.Attr) slog.Handler  { return n }
func (n *nopHandler) WithGroup(name string) slog.Handler        { return n }

// NewNopLogger returns a logger that discards all log events.
func NewNopLogger() *slog.Logger {
	return slog.New(&nopHandler{})
}

var _ slog.Handler = (*nopHandler)(nil)

///////////////////////////////////////////////////////////////////////////////
// Context helpers
///////////////////////////////////////////////////////////////////////////////

type ctxKeyType struct{}

var ctxKey ctxKeyType

// ContextWithLogger stores lg on ctx.
func ContextWithLogger(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey, lg)
}

// FromContext returns logger from ctx or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if lg, ok := ctx.Value(ctxKey).(*slog.Logger); ok && lg != nil {
		return lg
	}
	return slog.Default()
}

///////////////////////////////////////////////////////////////////////////////
// Test handler (simple, thread-safe)
///////////////////////////////////////////////////////////////////////////////

type LoggedEntry struct {
	Level slog.Level
	Msg   string
	Attrs map[string]any
}

// TestHandler captures structured entries for assertions.
type TestHandler struct {
	mu      sync.Mutex
	Entries []LoggedEntry
}

func (h *TestHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *TestHandler) Handle(_ context.Context, r slog.Record) error {
	e := LoggedEntry{
		Level: r.Level,
		Msg:   r.Message,
		Attrs: map[string]any{},
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.Entries = append(h.Entries, e)
	h.mu.Unlock()
	return nil
}

func (h *TestHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *TestHandler) WithGroup(_ string) slog.Handler      { return h }

// Snapshot returns a copy of the captured entries.
func (h *TestHandler) Snapshot() []LoggedEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LoggedEntry(nil), h.Entries...)
}

// NewTestLogger returns a logger that records into the returned handler.
func NewTestLogger() (*slog.Logger, *TestHandler) {
	th := &TestHandler{}
	return slog.New(th), th
}

var _ slog.Handler = (*TestHandler)(nil)
