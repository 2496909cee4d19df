package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/adamwoolhether/jsonapi/request"
)

// HTTP is the production [Transport], backed by an [http.Client].
type HTTP struct {
	c      *http.Client
	logger *slog.Logger
}

// NewHTTP returns a transport using hc. A nil hc selects
// [http.DefaultClient] and a nil logger selects [slog.Default].
func NewHTTP(hc *http.Client, logger *slog.Logger) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTP{c: hc, logger: logger}
}

// Client returns the underlying [http.Client].
func (t *HTTP) Client() *http.Client {
	return t.c
}

// Perform sends req and buffers the final response body. Trace context
// from ctx is propagated in the outgoing headers.
func (t *HTTP) Perform(ctx context.Context, req *request.Request) (*Response, error) {
	hr, err := req.NewHTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(hr.Header))

	resp, err := t.c.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("exec http do: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if body == nil {
		body = []byte{}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// PerformAsync runs Perform on a new goroutine.
func (t *HTTP) PerformAsync(ctx context.Context, req *request.Request, done Completion) {
	Background(t).PerformAsync(ctx, req, done)
}
