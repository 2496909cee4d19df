package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adamwoolhether/jsonapi/request"
)

// maxErrBodySize caps how much of a raw error body is rendered by
// [RequestError.Error]. The full body stays available in the Body field.
const maxErrBodySize = 4 << 10 // 4KB

// Kind identifies which of the fixed failure cases a [RequestError] is.
type Kind int

const (
	// KindInvalidRequest means the request URL could not be built.
	KindInvalidRequest Kind = iota + 1
	// KindEncoding means the request body failed to serialize.
	KindEncoding
	// KindUnderlying means the transport failed before producing a response.
	KindUnderlying
	// KindInvalidHTTPResponse means the response carried no usable status.
	KindInvalidHTTPResponse
	// KindEmptyErrorResponse means a non-2xx status with an empty body.
	KindEmptyErrorResponse
	// KindApplication means a non-2xx status whose body decoded as the
	// application error type.
	KindApplication
	// KindDecodingErrorFailure means a non-2xx status whose body did not
	// decode as the application error type.
	KindDecodingErrorFailure
	// KindEmptyResponse means a 2xx status with an empty body where content
	// was expected.
	KindEmptyResponse
	// KindDecodingFailure means a 2xx status whose body did not decode as
	// the response type.
	KindDecodingFailure
)

var (
	// ErrInvalidRequest is shared with the request package so either
	// sentinel matches.
	ErrInvalidRequest       = request.ErrInvalidRequest
	ErrEncoding             = errors.New("encoding error")
	ErrUnderlying           = errors.New("underlying transport failure")
	ErrInvalidHTTPResponse  = errors.New("invalid http response")
	ErrEmptyErrorResponse   = errors.New("empty error response")
	ErrApplication          = errors.New("application error")
	ErrDecodingErrorFailure = errors.New("decoding error response failed")
	ErrEmptyResponse        = errors.New("empty response")
	ErrDecodingFailure      = errors.New("decoding response failed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindEncoding:
		return ErrEncoding
	case KindUnderlying:
		return ErrUnderlying
	case KindInvalidHTTPResponse:
		return ErrInvalidHTTPResponse
	case KindEmptyErrorResponse:
		return ErrEmptyErrorResponse
	case KindApplication:
		return ErrApplication
	case KindDecodingErrorFailure:
		return ErrDecodingErrorFailure
	case KindEmptyResponse:
		return ErrEmptyResponse
	case KindDecodingFailure:
		return ErrDecodingFailure
	default:
		return nil
	}
}

// String returns the kind's description.
func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}

	return fmt.Sprintf("unknown kind(%d)", int(k))
}

// Retryable reports whether a caller may reasonably try the call again.
// Underlying transport failures and empty error responses are left to the
// caller's discretion and report true; every other kind is final.
func (k Kind) Retryable() bool {
	return k == KindUnderlying || k == KindEmptyErrorResponse
}

// RequestError is the single failure type produced by a call. Exactly one
// Kind is set per error; the other fields are populated only where the
// kind carries them:
//
//	KindEmptyErrorResponse    StatusCode
//	KindApplication           StatusCode, App
//	KindDecodingErrorFailure  StatusCode, Body, Err
//	KindEmptyResponse         StatusCode
//	KindDecodingFailure       StatusCode, Err
//	KindInvalidRequest        Err
//	KindEncoding              Err
//	KindUnderlying            Err
type RequestError[E any] struct {
	Kind       Kind
	StatusCode int
	// Body is the raw response body that failed to decode as E.
	Body []byte
	// App is the decoded application error.
	App E
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RequestError[E]) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())

	switch e.Kind {
	case KindEmptyErrorResponse:
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	case KindApplication:
		fmt.Fprintf(&b, ": status %d: %+v", e.StatusCode, e.App)
	case KindDecodingErrorFailure:
		body := e.Body
		if len(body) > maxErrBodySize {
			body = body[:maxErrBodySize]
		}
		fmt.Fprintf(&b, ": status %d, body: %s", e.StatusCode, body)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes the kind's sentinel, the cause, and the application error
// when E itself implements error, so errors.Is and errors.As reach all
// three.
func (e *RequestError[E]) Unwrap() []error {
	errs := make([]error, 0, 3)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Kind == KindApplication {
		if appErr, ok := any(e.App).(error); ok {
			errs = append(errs, appErr)
		}
	}

	return errs
}

// Retryable reports e.Kind.Retryable().
func (e *RequestError[E]) Retryable() bool {
	return e.Kind.Retryable()
}

// AsRequestError finds the first *RequestError[E] in err's chain.
func AsRequestError[E any](err error) (*RequestError[E], bool) {
	return errors.AsType[*RequestError[E]](err)
}
