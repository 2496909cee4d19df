package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrInvalidRequest is returned by [Build] when no valid request can be
// constructed from its inputs.
var ErrInvalidRequest = errors.New("invalid request")

// ContentTypeJSON is set on every request before caller headers are applied.
const ContentTypeJSON = "application/json"

// Method is one of the HTTP methods the client issues.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
	MethodTrace   Method = http.MethodTrace
)

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead, MethodOptions, MethodTrace:
		return true
	default:
		return false
	}
}

func (m Method) String() string {
	return string(m)
}

// Request is a fully resolved outgoing request. It is built once per call by
// [Build]; a decorator may still rewrite it before dispatch.
type Request struct {
	Method Method
	URL    *url.URL
	Header http.Header
	// Body is nil for bodyless requests.
	Body []byte
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	cpy := Request{
		Method: r.Method,
		Header: r.Header.Clone(),
	}
	if r.URL != nil {
		u := *r.URL
		if r.URL.User != nil {
			user := *r.URL.User
			u.User = &user
		}
		cpy.URL = &u
	}
	if r.Body != nil {
		cpy.Body = bytes.Clone(r.Body)
	}

	return &cpy
}

// NewHTTPRequest converts r into an *http.Request bound to ctx. The body
// can be replayed, so redirects that preserve it work as expected.
func (r *Request) NewHTTPRequest(ctx context.Context) (*http.Request, error) {
	if r.URL == nil {
		return nil, fmt.Errorf("%w: missing url", ErrInvalidRequest)
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.Method), r.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	req.Header = r.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}

	return req, nil
}
