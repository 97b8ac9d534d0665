package audit

import (
	"context"
	"log/slog"
	"time"
)

type requestIDKey struct{}

// WithRequestID stores the request id so audit records can carry it
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored by WithRequestID, if any
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Logger writes audit records for destructive operations
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, action, resource, resourceID, status, details string) {
	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", RequestID(ctx)),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogImport(ctx context.Context, status, details string) {
	al.LogAction(ctx, "load", "placeholder", "", status, details)
}

func (al *Logger) LogClear(ctx context.Context, status, details string) {
	al.LogAction(ctx, "clear", "users", "", status, details)
}

func (al *Logger) LogUserCreate(ctx context.Context, userID, status, details string) {
	al.LogAction(ctx, "create", "user", userID, status, details)
}

func (al *Logger) LogUserDelete(ctx context.Context, userID, status, details string) {
	al.LogAction(ctx, "delete", "user", userID, status, details)
}
