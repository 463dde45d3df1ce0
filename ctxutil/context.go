// Package ctxutil carries request-scoped values through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// TraceIDKey is the context key under which the trace id travels. The
// same key doubles as the structured log field name.
const TraceIDKey = "trace_id"

// GetTraceID reads the trace id from ctx, empty when none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// SetTraceID returns a child context carrying the given trace id.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID returns a context guaranteed to carry a trace id, minting
// a fresh one when ctx has none, along with the id itself.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}
