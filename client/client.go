package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/jsonapi/codec"
	"github.com/adamwoolhether/jsonapi/request"
	"github.com/adamwoolhether/jsonapi/transport"
)

// Client issues JSON requests through a [transport.Transport]. It owns its
// [codec.Codec]; two clients never share codec settings.
type Client struct {
	transport transport.Transport
	codec     *codec.Codec
	logger    *slog.Logger
	tracer    trace.Tracer
	executor  Executor
}

// Build creates a [Client]. Unless [WithTransport] is given, requests go
// through a [transport.HTTP] assembled from the remaining options.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		codec:    codec.New(opts.codec),
		logger:   slog.Default(),
		tracer:   noop.NewTracerProvider().Tracer("no-op tracer"),
		executor: Inline,
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.tracer != nil {
		client.tracer = opts.tracer
	}
	if opts.executor != nil {
		client.executor = opts.executor
	}

	if opts.transport != nil {
		if opts.configuresHTTP() {
			return nil, errors.New("custom transport cannot be combined with http options")
		}
		client.transport = opts.transport

		return client, nil
	}

	hc, err := opts.httpClient(func() *slog.Logger { return client.logger })
	if err != nil {
		return nil, err
	}
	client.transport = transport.NewHTTP(hc, client.logger)

	return client, nil
}

// Codec returns the client's codec. Changing its settings affects calls
// started afterwards.
func (c *Client) Codec() *codec.Codec {
	return c.codec
}

// Transport returns the transport shared by all calls on c.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Do performs a call and returns the decoded response. Failures are
// *RequestError[E]; if ctx ends before the call completes, Do returns
// ctx.Err() instead and no value.
//
//	user, err := client.Do[User, APIError](ctx, c, request.MethodGet, base,
//		client.WithResource("/users/1"),
//	)
func Do[U, E any](ctx context.Context, c *Client, method request.Method, base *url.URL, opts ...CallOption) (U, error) {
	return execute[U, E](ctx, c, method, base, opts)
}

// Result is the outcome of [Fetch]. Exactly one of Value and Err is
// meaningful.
type Result[U, E any] struct {
	Value U
	Err   error
}

// Ok reports whether the call succeeded.
func (r Result[U, E]) Ok() bool {
	return r.Err == nil
}

// Get returns the value and error as a pair.
func (r Result[U, E]) Get() (U, error) {
	return r.Value, r.Err
}

// RequestError returns the classified failure, if the call produced one.
// It reports false for successes and for canceled calls.
func (r Result[U, E]) RequestError() (*RequestError[E], bool) {
	if r.Err == nil {
		return nil, false
	}

	return AsRequestError[E](r.Err)
}

// Fetch is [Do] returning an explicit [Result].
func Fetch[U, E any](ctx context.Context, c *Client, method request.Method, base *url.URL, opts ...CallOption) Result[U, E] {
	v, err := execute[U, E](ctx, c, method, base, opts)

	return Result[U, E]{Value: v, Err: err}
}

// Send performs a call whose response payload is of no interest. A 2xx
// response with an empty body is a success.
func Send[E any](ctx context.Context, c *Client, method request.Method, base *url.URL, opts ...CallOption) error {
	_, err := execute[Empty, E](ctx, c, method, base, opts)

	return unwrapEmpty[E](err)
}

// unwrapEmpty folds KindEmptyResponse into success.
func unwrapEmpty[E any](err error) error {
	if reqErr, ok := AsRequestError[E](err); ok && reqErr.Kind == KindEmptyResponse {
		return nil
	}

	return err
}

// execute is the one path every calling convention goes through:
// encode, build, perform, classify.
func execute[U, E any](ctx context.Context, c *Client, method request.Method, base *url.URL, optFns []CallOption) (U, error) {
	var zero U

	ctx, span := c.tracer.Start(ctx, "jsonapi.request", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.request.method", string(method)))

	opts := callOpts{resource: "/"}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return zero, fail(span, &RequestError[E]{Kind: KindInvalidRequest, Err: err})
		}
	}

	var body []byte
	if opts.hasBody {
		b, err := c.codec.Encode(opts.body)
		if err != nil {
			return zero, fail(span, &RequestError[E]{Kind: KindEncoding, Err: err})
		}
		body = b
	}

	req, err := request.Build(request.Params{
		Method:    method,
		Base:      base,
		Resource:  opts.resource,
		Header:    opts.headers,
		Query:     opts.params,
		Body:      body,
		Decorator: opts.decorator,
	})
	if err != nil {
		return zero, fail(span, &RequestError[E]{Kind: KindInvalidRequest, Err: err})
	}
	span.SetAttributes(attribute.String("url.full", req.URL.String()))

	resp, err := c.transport.Perform(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		span.SetStatus(codes.Error, "canceled")
		span.RecordError(ctxErr)
		c.logger.Debug("request canceled", "method", method, "url", req.URL.String(), "error", ctxErr)

		return zero, ctxErr
	}
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}

	v, reqErr := Classify[U, E](c.codec, resp, err)
	if reqErr != nil {
		c.logger.Debug("request failed", "method", method, "url", req.URL.String(), "kind", reqErr.Kind.String(), "status", reqErr.StatusCode)

		return zero, fail(span, reqErr)
	}

	c.logger.Debug("request completed", "method", method, "url", req.URL.String(), "status", resp.StatusCode)

	return v, nil
}

// fail records reqErr on span and returns it as an error.
func fail[E any](span trace.Span, reqErr *RequestError[E]) error {
	span.SetStatus(codes.Error, reqErr.Kind.String())
	span.RecordError(reqErr, trace.WithAttributes(
		attribute.String("jsonapi.error.kind", reqErr.Kind.String()),
		attribute.Bool("jsonapi.error.retryable", reqErr.Retryable()),
	))

	return reqErr
}
