// Package log builds the slog loggers used by the client and the CLI. It adds
// a TRACE level below DEBUG for raw request and response dumps, and a FATAL
// level above ERROR.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// LevelTrace for HTTP requests and responses exchanged with the API.
	LevelTrace = slog.Level(-8)

	// LevelFatal for errors that should print and exit with a non-zero code.
	LevelFatal = slog.Level(16)
)

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "fatal":
		return LevelFatal, nil
	}

	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// NewLogger returns a text or json logger writing to w at minLevel and above.
// Source locations are added at DEBUG and below.
func NewLogger(w io.Writer, minLevel slog.Level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level:       minLevel,
		AddSource:   minLevel <= slog.LevelDebug,
		ReplaceAttr: replaceLevelNames,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	return slog.New(handler), nil
}

func replaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	switch a.Value.Any().(slog.Level) {
	case LevelTrace:
		a.Value = slog.StringValue("TRACE")
	case LevelFatal:
		a.Value = slog.StringValue("FATAL")
	}
	return a
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelFatal + 1}))
}

// Trace logs msg at trace level.
func Trace(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	logger.Log(ctx, LevelTrace, msg, args...)
}

// Fatal logs msg at fatal level and exits.
func Fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelFatal, msg, args...)
	os.Exit(1)
}
