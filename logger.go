package vecbench

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with benchmark-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithMetric adds a metric field to the logger.
func (l *Logger) WithMetric(metric string) *Logger {
	return &Logger{
		Logger: l.Logger.With("metric", metric),
	}
}

// LogPhase logs the outcome of a benchmark phase.
func (l *Logger) LogPhase(ctx context.Context, phase string, count int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "phase failed",
			"phase", phase,
			"count", count,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "phase completed",
			"phase", phase,
			"count", count,
			"duration", duration,
		)
	}
}

// LogDataset logs a dataset load.
func (l *Logger) LogDataset(ctx context.Context, source string, entries, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"source", source,
			"entries", entries,
			"dimension", dimension,
		)
	}
}

// LogCheck logs the outcome of the structural check.
func (l *Logger) LogCheck(ctx context.Context, passed bool, duration time.Duration) {
	if !passed {
		l.ErrorContext(ctx, "index check failed",
			"duration", duration,
		)
	} else {
		l.InfoContext(ctx, "index check passed",
			"duration", duration,
		)
	}
}
