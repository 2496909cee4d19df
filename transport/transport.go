package transport

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/jsonapi/request"
)

// Response is a buffered HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body is empty, never nil, when the server sent no content.
	Body []byte
}

// Transport performs exactly one request per call.
type Transport interface {
	Perform(ctx context.Context, req *request.Request) (*Response, error)
}

// Func adapts an ordinary function into a [Transport].
type Func func(ctx context.Context, req *request.Request) (*Response, error)

// Perform calls f(ctx, req).
func (f Func) Perform(ctx context.Context, req *request.Request) (*Response, error) {
	return f(ctx, req)
}

// Completion receives the outcome of an asynchronous perform. Exactly one
// of resp and err is non-nil.
type Completion func(resp *Response, err error)

// AsyncTransport performs a request and reports the outcome through a
// completion that fires exactly once, on a goroutine of its choosing.
type AsyncTransport interface {
	PerformAsync(ctx context.Context, req *request.Request, done Completion)
}
