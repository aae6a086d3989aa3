package contextutil

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// GetRequestID returns the request id carried by ctx, or "" when the
// middleware never ran (background jobs, tests).
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}
