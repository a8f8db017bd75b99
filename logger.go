package filestore

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store specific helpers, so that every
// operation logs with the same field names.
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

// WithFile adds a file name field to the logger.
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", name),
	}
}

// LogPut logs a put operation.
func (l *Logger) LogPut(ctx context.Context, name string, length, blocks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "put failed",
			"file", name,
			"length", length,
			"blocks", blocks,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "put completed",
			"file", name,
			"length", length,
			"blocks", blocks,
		)
	}
}

// LogGet logs a get operation.
func (l *Logger) LogGet(ctx context.Context, name string, content Content, err error) {
	switch {
	case err != nil:
		l.DebugContext(ctx, "get failed",
			"file", name,
			"error", err,
		)
	case content.IsCorrupted():
		l.ErrorContext(ctx, "file unrecoverable, deleted",
			"file", name,
			"recovered", len(content.Bytes()),
		)
	default:
		l.DebugContext(ctx, "get completed",
			"file", name,
			"length", len(content.Bytes()),
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, name string, err error) {
	if err != nil {
		l.DebugContext(ctx, "delete failed",
			"file", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"file", name,
		)
	}
}

// LogRepair logs a block rewritten from a healthy replica.
func (l *Logger) LogRepair(ctx context.Context, block, source int, ok bool) {
	if ok {
		l.WarnContext(ctx, "repaired corrupted block",
			"block", block,
			"source", source,
		)
	} else {
		l.WarnContext(ctx, "repair write corrupted",
			"block", block,
			"source", source,
		)
	}
}
