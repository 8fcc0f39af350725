// Package monitoring holds the process-wide structured logger.
package monitoring

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

// Logger returns the current logger
func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the logger. Passing nil mutes logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// NewTextLogger builds a text logger writing to w at the given level
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
