package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps how much of a request body ReadBody accepts.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned by ReadBody for bodies over MaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// ReadBody reads the whole request body.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		if _, ok := errors.AsType[*http.MaxBytesError](err); ok {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// QueryMap returns the first value of every query parameter.
func QueryMap(r *http.Request) map[string]string {
	q := r.URL.Query()

	m := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}

	return m
}
