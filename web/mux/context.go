package mux

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey int

const valuesKey ctxKey = 1

// Values are set once per request by the App.
type Values struct {
	TraceID    string
	RequestID  string
	Now        time.Time
	Tracer     trace.Tracer
	StatusCode int
}

// SetStatusCode records the status written for the request.
func SetStatusCode(ctx context.Context, statusCode int) {
	if v, ok := ctx.Value(valuesKey).(*Values); ok {
		v.StatusCode = statusCode
	}
}

// GetValues returns the request's Values. Outside a request it returns
// placeholder values with nil ids.
func GetValues(ctx context.Context) *Values {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return &Values{
			TraceID:   uuid.Nil.String(),
			RequestID: uuid.Nil.String(),
			Now:       time.Now().UTC(),
		}
	}

	return v
}

// GetRequestID returns the id sent back in the X-Request-ID header.
func GetRequestID(ctx context.Context) string {
	return GetValues(ctx).RequestID
}

// AddSpan starts a child span with the request's tracer.
func AddSpan(ctx context.Context, spanName string, keyValues ...attribute.KeyValue) (context.Context, trace.Span) {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok || v.Tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	ctx, span := v.Tracer.Start(ctx, spanName)
	span.SetAttributes(keyValues...)

	return ctx, span
}

func setValues(ctx context.Context, v *Values) context.Context {
	return context.WithValue(ctx, valuesKey, v)
}
