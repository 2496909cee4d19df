package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamwoolhether/jsonapi/web/mux"
)

// Logger writes one line per completed request, at Warn when the status is
// 5xx or the error escaped every other middleware and at Info otherwise.
// The start of each request is logged at Debug.
func Logger(log *slog.Logger) mux.Middleware {
	return func(handler mux.Handler) mux.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			v := mux.GetValues(ctx)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.RequestURI(),
				"remote_addr", r.RemoteAddr,
				"request_id", v.RequestID,
				"trace_id", v.TraceID,
			}
			log.DebugContext(ctx, "request started", attrs...)

			err := handler(ctx, w, r)

			level := slog.LevelInfo
			if err != nil || v.StatusCode >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			attrs = append(attrs, "status", v.StatusCode, "elapsed", time.Since(v.Now).String())
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			log.Log(ctx, level, "request completed", attrs...)

			return err
		}
	}
}
