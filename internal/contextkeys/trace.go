package contextkeys

import (
	"context"

	"catalog-service/internal/core/port"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext: "" если trace_id не задан
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// WithTrace начинает обработку одного запроса или сообщения: логгер получает
// поле trace_id, и он же вместе с trace_id кладется в контекст
func WithTrace(ctx context.Context, base port.LoggerPort, traceID string) (context.Context, port.LoggerPort) {
	scoped := base.WithFields(port.Fields{"trace_id": traceID})
	ctx = ContextWithTraceID(ctx, traceID)
	ctx = ContextWithLogger(ctx, scoped)
	return ctx, scoped
}
