package transport

import (
	"context"
	"errors"

	"github.com/adamwoolhether/jsonapi/request"
)

// ErrNoResponse is returned by [Blocking] when a completion reports neither
// a response nor an error.
var ErrNoResponse = errors.New("transport completed without a response")

type blocking struct {
	async AsyncTransport
}

// Blocking wraps an [AsyncTransport] so each Perform parks the calling
// goroutine until the completion fires. There is no timeout: a transport
// that never completes blocks the caller forever. Cancellation is only
// honored if the async transport itself observes ctx.
func Blocking(async AsyncTransport) Transport {
	return blocking{async: async}
}

type outcome struct {
	resp *Response
	err  error
}

func (b blocking) Perform(ctx context.Context, req *request.Request) (*Response, error) {
	// Buffered so the completion never blocks its goroutine.
	done := make(chan outcome, 1)

	b.async.PerformAsync(ctx, req, func(resp *Response, err error) {
		done <- outcome{resp: resp, err: err}
	})

	out := <-done
	if out.err != nil {
		return nil, out.err
	}
	if out.resp == nil {
		return nil, ErrNoResponse
	}

	return out.resp, nil
}

type background struct {
	t Transport
}

// Background wraps a [Transport] so PerformAsync returns immediately and the
// completion fires from a new goroutine.
func Background(t Transport) AsyncTransport {
	return background{t: t}
}

func (b background) PerformAsync(ctx context.Context, req *request.Request, done Completion) {
	go func() {
		done(b.t.Perform(ctx, req))
	}()
}
