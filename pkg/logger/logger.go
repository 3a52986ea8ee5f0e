package app_logger

import (
	"context"
	"log"
	"time"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok && rid != "" {
		return rid
	}
	return "unknown"
}

func LogRequest(ctx context.Context, method, url string) {
	log.Printf("[info] request_id=%s %s %s", RequestID(ctx), method, url)
}

func LogResponse(ctx context.Context, method, url string, status int, elapsed time.Duration) {
	log.Printf("[info] request_id=%s %s %s status=%d elapsed=%s", RequestID(ctx), method, url, status, elapsed)
}

func LogError(ctx context.Context, operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", RequestID(ctx), operation, err)
}

func LogAction(actionType, phase string) {
	log.Printf("[store] %s/%s", actionType, phase)
}
