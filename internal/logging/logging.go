// Package logging builds the structured logger used by the command line tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LevelEnv selects the log level: debug, info, warn or error.
const LevelEnv = "NBFIGTULZ_LOG_LEVEL"

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv reads the level from NBFIGTULZ_LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})
	return slog.New(handler)
}

// CreateLogger returns a logger on stderr at the level from the environment.
func CreateLogger() *slog.Logger {
	return New(os.Stderr, LevelFromEnv())
}
