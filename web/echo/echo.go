// Package echo is a reflecting HTTP server for exercising JSON clients.
// It echoes request bodies and query strings back as JSON and lets the
// caller choose the response status with a request header.
package echo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/jsonapi/web"
	"github.com/adamwoolhether/jsonapi/web/errs"
	"github.com/adamwoolhether/jsonapi/web/middleware"
	"github.com/adamwoolhether/jsonapi/web/mux"
)

// Request headers the server reacts to, and the response header it adds.
const (
	StatusHeader      = "X-HTTP-STATUS"
	LocationHeader    = "X-LOCATION"
	ContentTypeHeader = "X-Echo-Content-Type"
)

// Routes returns the echo server's handler.
func Routes(log *slog.Logger, tracer trace.Tracer) http.Handler {
	app := mux.New(
		mux.WithLogger(log),
		mux.WithTracer(tracer),
		mux.WithMiddleware(
			middleware.Logger(log),
			middleware.StatusOverride(StatusHeader),
			middleware.Errors(log),
			middleware.Panics(),
		),
	)

	app.Handle(http.MethodGet, "/healthz", mux.Adapt(http.HandlerFunc(health)))

	app.Use(echoContentType)
	app.Handle(http.MethodGet, "/{$}", root)
	app.Get("/get", query)
	app.Post("/post", mirror)
	app.Put("/put", mirror)
	app.Delete("/delete", mirror)
	app.Get("/redirect", redirect)

	return app
}

// echoContentType copies the request's Content-Type to the response.
func echoContentType(handler mux.Handler) mux.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			w.Header().Set(ContentTypeHeader, ct)
		}

		return handler(ctx, w, r)
	}
}

// health answers liveness probes. It sits outside echoContentType.
func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", web.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func root(ctx context.Context, w http.ResponseWriter, _ *http.Request) error {
	return web.RespondJSON(ctx, w, http.StatusOK, struct{}{})
}

func query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.RespondJSON(ctx, w, http.StatusOK, web.QueryMap(r))
}

// mirror writes the request body back unchanged. An empty body gets an
// empty response.
func mirror(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	body, err := web.ReadBody(w, r)
	if err != nil {
		if errors.Is(err, web.ErrBodyTooLarge) {
			return errs.New(http.StatusRequestEntityTooLarge, err)
		}
		return err
	}

	ctx, span := mux.AddSpan(ctx, "echo.mirror", attribute.Int("http.request.body.size", len(body)))
	defer span.End()

	if len(body) == 0 {
		return web.Respond(ctx, w, http.StatusOK, "", nil)
	}

	return web.Respond(ctx, w, http.StatusOK, web.ContentTypeJSON, body)
}

func redirect(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	location := r.Header.Get(LocationHeader)
	if location == "" {
		return errs.Newf(http.StatusBadRequest, "missing %s header", LocationHeader)
	}

	return web.Redirect(ctx, w, r, location, http.StatusFound)
}
