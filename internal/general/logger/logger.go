package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Logger wraps zap with the call shape used across services:
// an action tag, a human message, and optional detail fields. The
// request correlation id travels in the context.
type Logger struct {
	zap *zap.Logger
}

// New creates a structured logger for the given service.
func New(service string) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.InitialFields = map[string]any{"service": serviceName(service)}

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return &Logger{zap: z}
}

// Debug writes a DEBUG line with optional details.
func (l *Logger) Debug(ctx context.Context, action, msg string, details map[string]any) {
	l.zap.Debug(msg, l.fields(ctx, action, nil, details)...)
}

// Info writes an INFO line with optional details.
func (l *Logger) Info(ctx context.Context, action, msg string, details map[string]any) {
	l.zap.Info(msg, l.fields(ctx, action, nil, details)...)
}

// Error writes an ERROR line with the error attached.
func (l *Logger) Error(ctx context.Context, action, msg string, err error, details map[string]any) {
	l.zap.Error(msg, l.fields(ctx, action, err, details)...)
}

// Sync flushes buffered log entries; call on shutdown.
func (l *Logger) Sync() {
	_ = l.zap.Sync()
}

func (l *Logger) fields(ctx context.Context, action string, err error, details map[string]any) []zap.Field {
	fields := make([]zap.Field, 0, 3+len(details))
	fields = append(fields, zap.String("action", safeAction(action)))
	if reqID := requestID(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	for k, v := range details {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

// ------------ Context helpers -------------

type ctxKey string

const ctxKeyRequestID ctxKey = "movemarket_request_id"

// WithRequestID returns a new context carrying the request correlation id.
func (l *Logger) WithRequestID(ctx context.Context, reqID string) context.Context {
	if strings.TrimSpace(reqID) == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyRequestID, reqID)
}

// requestID extracts the correlation id from ctx (if any).
func requestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return s
	}
	return ""
}

// ----- Small utilities -----

func serviceName(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown-service"
	}
	return s
}

func safeAction(a string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return "unspecified"
	}
	return a
}
