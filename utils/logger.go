package utils

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// NewLogger returns a pterm logger writing to w at the given level.
// Unknown or empty levels fall back to "info"; a nil writer means stderr.
func NewLogger(level string, w io.Writer) *pterm.Logger {
	if w == nil {
		w = os.Stderr
	}
	return pterm.DefaultLogger.
		WithLevel(ParseLogLevel(level)).
		WithWriter(w)
}

// NopLogger returns a logger that discards everything.
func NopLogger() *pterm.Logger {
	return pterm.DefaultLogger.
		WithLevel(pterm.LogLevelDisabled).
		WithWriter(io.Discard)
}

// ParseLogLevel converts a level name into a pterm log level.
func ParseLogLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}
