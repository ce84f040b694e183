package ctxutil

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
)

type callerKey struct{}

type requestIDKey struct{}

// WithCaller сохраняет вызывающего пользователя в контексте
func WithCaller(ctx context.Context, caller model.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom возвращает вызывающего пользователя из контекста
func CallerFrom(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(model.Caller)
	return caller, ok
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
