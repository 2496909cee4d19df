package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/adamwoolhether/jsonapi/web"
	"github.com/adamwoolhether/jsonapi/web/errs"
	"github.com/adamwoolhether/jsonapi/web/mux"
)

// StatusOverride replaces the status of the response with the one named
// in the request's header, leaving the body as the handler wrote it.
// Requests without the header are untouched. Values outside [200, 599]
// are rejected with a 400.
func StatusOverride(header string) mux.Middleware {
	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			raw := r.Header.Get(header)
			if raw == "" {
				return handler(ctx, w, r)
			}

			code, err := strconv.Atoi(raw)
			if err != nil || code < 200 || code > 599 {
				return web.RespondError(ctx, w, errs.Newf(http.StatusBadRequest, "invalid %s value %q", header, raw))
			}

			err = handler(ctx, &statusWriter{ResponseWriter: w, code: code}, r)
			mux.SetStatusCode(ctx, code)

			return err
		}

		return h
	}

	return m
}

type statusWriter struct {
	http.ResponseWriter
	code  int
	wrote bool
}

func (sw *statusWriter) WriteHeader(int) {
	if sw.wrote {
		return
	}
	sw.wrote = true
	sw.ResponseWriter.WriteHeader(sw.code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.WriteHeader(sw.code)
	return sw.ResponseWriter.Write(b)
}

func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
