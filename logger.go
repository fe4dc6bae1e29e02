package idxgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with idxgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithKind adds a store-kind field to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(kind string, records, keys int, err error) {
	if err != nil {
		l.Error("index build failed",
			"kind", kind,
			"records", records,
			"error", err,
		)
	} else {
		l.Debug("index build completed",
			"kind", kind,
			"records", records,
			"keys", keys,
		)
	}
}

// LogViewCreate logs a view creation.
func (l *Logger) LogViewCreate(requested, visible int) {
	l.Debug("view created",
		"requested_keys", requested,
		"visible_keys", visible,
	)
}

// LogPush logs a push operation.
func (l *Logger) LogPush(pos uint64, err error) {
	if err != nil {
		l.Error("push failed",
			"position", pos,
			"error", err,
		)
	} else {
		l.Debug("push completed",
			"position", pos,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(pos uint64, err error) {
	if err != nil {
		l.Error("update failed",
			"position", pos,
			"error", err,
		)
	} else {
		l.Debug("update completed",
			"position", pos,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(pos uint64, err error) {
	if err != nil {
		l.Error("remove failed",
			"position", pos,
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"position", pos,
		)
	}
}
