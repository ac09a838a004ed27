package logger

import (
	"context"

	"yumexpress-be/internal/utils"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromCtx returns the global logger annotated with the request id and, once
// the auth gate has run, the caller's account id and role.
func FromCtx(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if reqID := RequestIDFrom(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if id, ok := utils.GetUserIDFromContext(ctx); ok {
		fields = append(fields,
			zap.String("account_id", id),
			zap.String("role", utils.GetUserRoleFromContext(ctx)),
		)
	}

	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
