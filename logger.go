package framevault

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with framevault-specific context. This provides
// structured logging with consistent field names.
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
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds an ID field to the logger.
func (l *Logger) WithID(id uint64) *Logger {
	return &Logger{Logger: l.Logger.With("id", id)}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.Logger.With("count", count)}
}

// LogInsert logs a single chunk's insertion into the vector index.
func (l *Logger) LogInsert(ctx context.Context, id uint64, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed", "id", id, "dimension", dimension, "error", err)
	} else {
		l.DebugContext(ctx, "insert completed", "id", id, "dimension", dimension)
	}
}

// LogSearch logs an index search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "k", k, "error", err)
	} else {
		l.DebugContext(ctx, "search completed", "k", k, "results", resultsFound)
	}
}

// LogBuildVideo logs an encode coordinator BuildVideo call.
func (l *Logger) LogBuildVideo(ctx context.Context, filename string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build video failed", "filename", filename, "count", count, "error", err)
	} else {
		l.InfoContext(ctx, "build video completed", "filename", filename, "count", count)
	}
}

// LogRetrieve logs a decode coordinator Retrieve/RetrieveFrames call.
func (l *Logger) LogRetrieve(ctx context.Context, filename string, recovered int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "retrieve failed", "filename", filename, "error", err)
	} else {
		l.DebugContext(ctx, "retrieve completed", "filename", filename, "recovered", recovered)
	}
}
