package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// TraceIDField is the log field carrying the trace ID.
const TraceIDField = "trace_id"

// GenerateTraceID returns a new ULID trace ID.
func GenerateTraceID() string {
	return ulid.Make().String()
}

// ContextWithTraceID returns ctx carrying traceID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID in ctx or a new one.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return GenerateTraceID()
}

// FromContext returns the logger stored in ctx. Without one, a disabled
// logger is returned so callers never need a nil check.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// TraceHook adds the trace ID of the event's context to each entry. Entries
// must be bound to a context with Ctx for the ID to be found.
type TraceHook struct{}

// Run implements zerolog.Hook.
func (TraceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str(TraceIDField, id)
	}
}
