package digitknn

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hupe1980/digitknn/knn"
)

// Logger wraps slog.Logger with digitknn-specific context.
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
	return NewWriterLogger(os.Stderr, level, "json")
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewWriterLogger(os.Stderr, level, "text")
}

// NewWriterLogger creates a Logger writing to w. format is "json" or
// "text"; anything else falls back to text.
func NewWriterLogger(w io.Writer, level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return NewLogger(handler)
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogLoad logs the outcome of loading a dataset.
func (l *Logger) LogLoad(ctx context.Context, images, labels string, samples int, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"images", images,
			"labels", labels,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"images", images,
			"labels", labels,
			"samples", samples,
			"took", took,
		)
	}
}

// LogClassify logs a single classification. Use WithK to tag the
// neighbor count.
func (l *Logger) LogClassify(ctx context.Context, res knn.Result, took time.Duration) {
	l.DebugContext(ctx, "classify completed",
		"primary", res.Primary.String(),
		"secondary", res.Secondary.String(),
		"tertiary", res.Tertiary.String(),
		"took", took,
	)
}
