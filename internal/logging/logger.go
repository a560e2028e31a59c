package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type requestIDKey struct{}

// WithRequestID stores the request id on ctx for loggers created further down.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Setup installs the process-wide slog handler. Production gets JSON lines.
func Setup(w io.Writer, level, env string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler
	if env == "production" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger provides structured logging for services
type Logger struct {
	requestID string
	base      *slog.Logger
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID, base: slog.Default()}
}

func (l *Logger) with(operation string) *slog.Logger {
	return l.base.With("request_id", l.requestID, "operation", operation)
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.with(operation).Error("operation failed", "error", err)
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string, args ...any) {
	l.with(operation).Info(message, args...)
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string, args ...any) {
	l.with(operation).Warn(message, args...)
}
