package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog with a level switched by the debug flag. All log
// output goes to stderr so stdout stays clean for command results.
type Logger struct {
	*slog.Logger
}

// New creates a Logger. With debug enabled, DEBUG records are emitted
// and each record carries its source location.
func New(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	return &Logger{Logger: slog.New(handler)}
}

// With returns a Logger whose records all include the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}
