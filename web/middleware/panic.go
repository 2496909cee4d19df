package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/jsonapi/web/errs"
	"github.com/adamwoolhether/jsonapi/web/mux"
)

// Panics turns a panic below it into an internal *errs.Error holding the
// panic value and stack, and marks the request span as failed.
func Panics() mux.Middleware {
	return func(handler mux.Handler) mux.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				err = errs.NewInternal(fmt.Errorf("PANIC [%v] TRACE[%s]", rec, debug.Stack()))

				span := trace.SpanFromContext(ctx)
				span.RecordError(err)
				span.SetStatus(codes.Error, fmt.Sprint("panic: ", rec))
			}()

			return handler(ctx, w, r)
		}
	}
}
