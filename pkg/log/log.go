// Package log provides debug-gated structured logging for stakx commands.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Debug controls debug log output. Set by STAKX_DEBUG environment variable by default.
var Debug = os.Getenv("STAKX_DEBUG") != ""

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

// SetLogger replaces the logger used by this package.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Debugf logs a debug message if Debug is true.
func Debugf(format string, v ...any) {
	if !Debug {
		return
	}

	logger.LogAttrs(context.Background(), slog.LevelDebug, fmt.Sprintf(format, v...))
}

// Info logs unconditionally at info level.
func Info(msg string, attrs ...slog.Attr) {
	logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
}

// Warn logs unconditionally at warn level.
func Warn(msg string, attrs ...slog.Attr) {
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

// Path returns the canonical attribute for a document path.
func Path(p string) slog.Attr { return slog.String("path", p) }

// Route returns the canonical attribute for a route or permalink.
func Route(r string) slog.Attr { return slog.String("route", r) }

// Count returns the canonical attribute for a number of items.
func Count(n int) slog.Attr { return slog.Int("count", n) }

// Error returns the canonical attribute for an error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
