// Package testutil provides helpers for the controller's tests.
package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a logger that writes records of at least the given level to buffer. Timestamps are
// dropped, so tests can compare the output.
func NewBufferLogger(buffer *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(buffer, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
