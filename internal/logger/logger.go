package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log = slog.Default()

// Init initializes the global logger with the appropriate level.
// If verbose is true or LOG_LEVEL env var is "debug", debug logging is enabled.
// LOG_FORMAT=json switches to JSON output.
func Init(verbose bool) {
	log = newLogger(os.Stderr, verbose, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(log)
}

func newLogger(w io.Writer, verbose bool, levelEnv, formatEnv string) *slog.Logger {
	level := slog.LevelInfo
	if verbose || strings.EqualFold(levelEnv, "debug") {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.EqualFold(formatEnv, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}
