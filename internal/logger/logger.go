package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

var defaultLogger *slog.Logger

type ctxKey struct{}

// Initialize sets up the global logger with the specified level and format
func Initialize(level, format string) {
	InitializeWithWriter(os.Stdout, level, format)
}

// InitializeWithWriter is Initialize with an explicit destination
func InitializeWithWriter(w io.Writer, level, format string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// DebugContext logs a debug message with the request id carried by ctx
func DebugContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with the request id carried by ctx
func InfoContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with the request id carried by ctx
func WarnContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with the request id carried by ctx
func ErrorContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).ErrorContext(ctx, msg, args...)
}

// WithService returns a logger with service name attached
func WithService(serviceName string) *slog.Logger {
	return Get().With("service", serviceName)
}

// WithRequestID stores a request id in ctx so every ...Context log line carries it
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the request id stored by WithRequestID
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the default logger, annotated with the request id when present
func FromContext(ctx context.Context) *slog.Logger {
	if rid := RequestID(ctx); rid != "" {
		return Get().With("request_id", rid)
	}
	return Get()
}

// ExternalServiceCall logs an outbound call (debug log for external resources)
func ExternalServiceCall(ctx context.Context, service, operation string, args ...any) {
	allArgs := append([]any{"service", service, "operation", operation}, args...)
	FromContext(ctx).Debug("→ External service call", allArgs...)
}

// ExternalServiceResult logs an outbound call result (debug log for external resources)
func ExternalServiceResult(ctx context.Context, service, operation string, err error, args ...any) {
	allArgs := append([]any{"service", service, "operation", operation}, args...)
	if err != nil {
		allArgs = append(allArgs, "error", err)
		FromContext(ctx).Warn("← External service call failed", allArgs...)
	} else {
		FromContext(ctx).Debug("← External service call succeeded", allArgs...)
	}
}

// HTTPRequest logs one served request
func HTTPRequest(ctx context.Context, method, path string, status int, elapsed time.Duration, remote string) {
	l := FromContext(ctx)
	args := []any{"method", method, "path", path, "status", status, "duration_ms", elapsed.Milliseconds(), "remote", remote}
	switch {
	case status >= 500:
		l.Error("HTTP request", args...)
	case status >= 400:
		l.Warn("HTTP request", args...)
	default:
		l.Info("HTTP request", args...)
	}
}
