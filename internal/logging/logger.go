// Package logging builds the slog loggers used across nbtest.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at the given level.
// Callers normally pass os.Stderr: stdout belongs to cell output and, in MCP
// stdio mode, to JSON-RPC frames.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// NewNop returns a logger that discards everything. It is the default for
// library types so callers opt in to logging rather than out.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// normalizeKeys maps the attribute keys different call sites use onto one
// vocabulary, so log lines stay grep-able.
func normalizeKeys(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
