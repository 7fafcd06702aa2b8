package debug

import (
	"io"
	"log/slog"
	"strings"
)

var (
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	enabled bool
)

// SetOutput sets the debug output destination.
// level may be "debug", "info", "warn" or "error" (default "info").
func SetOutput(w io.Writer, level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	enabled = w != io.Discard
}

// Log writes an info record with key/value pairs
func Log(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Trace writes a debug record, used for per-frame noise
func Trace(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Warn writes a warning record
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return enabled
}
