package client

import (
	"github.com/adamwoolhether/jsonapi/transport"
)

// Decoder decodes a JSON body into v.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Empty is the response type for calls that expect no meaningful payload.
// It also serves as a request body that encodes to "{}".
type Empty struct{}

// Classify maps the outcome of a perform into either a decoded U or exactly
// one [RequestError]. The checks run in a fixed order and stop at the first
// match:
//
//  1. performErr set: KindUnderlying.
//  2. no response, or a status outside [100, 999]: KindInvalidHTTPResponse.
//  3. status outside [200, 300): KindEmptyErrorResponse for an empty body,
//     otherwise KindApplication or KindDecodingErrorFailure depending on
//     whether the body decodes as E.
//  4. status inside [200, 300): KindEmptyResponse for an empty body,
//     otherwise the decoded U or KindDecodingFailure.
//
// Callers that expect no content fold KindEmptyResponse into success
// themselves; see [Send].
func Classify[U, E any](dec Decoder, resp *transport.Response, performErr error) (U, *RequestError[E]) {
	var zero U

	switch {
	case performErr != nil:
		return zero, &RequestError[E]{Kind: KindUnderlying, Err: performErr}
	case resp == nil || resp.StatusCode < 100 || resp.StatusCode > 999:
		return zero, &RequestError[E]{Kind: KindInvalidHTTPResponse}
	}

	status := resp.StatusCode

	if status < 200 || status >= 300 {
		if len(resp.Body) == 0 {
			return zero, &RequestError[E]{Kind: KindEmptyErrorResponse, StatusCode: status}
		}

		var appErr E
		if err := dec.Decode(resp.Body, &appErr); err != nil {
			return zero, &RequestError[E]{Kind: KindDecodingErrorFailure, StatusCode: status, Body: resp.Body, Err: err}
		}

		return zero, &RequestError[E]{Kind: KindApplication, StatusCode: status, App: appErr}
	}

	if len(resp.Body) == 0 {
		return zero, &RequestError[E]{Kind: KindEmptyResponse, StatusCode: status}
	}

	var v U
	if err := dec.Decode(resp.Body, &v); err != nil {
		return zero, &RequestError[E]{Kind: KindDecodingFailure, StatusCode: status, Err: err}
	}

	return v, nil
}
