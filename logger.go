package countof

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with size-aware helpers.
// Sizes are always logged in bytes under consistent field names.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// With returns a Logger with the given attributes added.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// WithUnit adds a unit field naming U.
func WithUnit[U any](l *Logger) *Logger {
	return l.With("unit", UnitName[U]())
}

// WithCount adds the magnitude of c and its unit to the logger.
func WithCount[U any](l *Logger, key string, c Count[U]) *Logger {
	return l.With(key, c.n, key+"_unit", UnitName[U]())
}

// LogAlloc logs an allocation of size bytes.
func (l *Logger) LogAlloc(ctx context.Context, size ByteCount, err error) {
	if err != nil {
		l.ErrorContext(ctx, "allocation failed",
			"bytes", size.n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "allocation completed",
			"bytes", size.n,
		)
	}
}

// LogFree logs the release of size bytes.
func (l *Logger) LogFree(ctx context.Context, size ByteCount) {
	l.DebugContext(ctx, "memory released",
		"bytes", size.n,
	)
}

// LogMap logs a memory mapping.
func (l *Logger) LogMap(ctx context.Context, path string, size ByteCount, err error) {
	if err != nil {
		l.ErrorContext(ctx, "map failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "mapped",
			"path", path,
			"bytes", size.n,
			"size", Humanize(size),
		)
	}
}

// LogLimit logs a request that was refused because it would exceed limit.
func (l *Logger) LogLimit(ctx context.Context, requested, used, limit ByteCount) {
	l.WarnContext(ctx, "memory limit reached",
		"requested", requested.n,
		"used", used.n,
		"limit", limit.n,
	)
}
