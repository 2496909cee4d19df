package transport

import (
	"context"
	"sync"

	"github.com/adamwoolhether/jsonapi/request"
)

// Recorder is a test [Transport] that captures every outgoing request and
// then delegates to a real transport to complete the call.
type Recorder struct {
	next Transport

	// OnRequest, if set, is called with each recorded request before it
	// is forwarded.
	OnRequest func(*request.Request)

	mu       sync.Mutex
	requests []*request.Request
}

// NewRecorder returns a Recorder forwarding to next.
func NewRecorder(next Transport) *Recorder {
	return &Recorder{next: next}
}

// Perform records a copy of req and forwards it.
func (r *Recorder) Perform(ctx context.Context, req *request.Request) (*Response, error) {
	cpy := req.Clone()

	r.mu.Lock()
	r.requests = append(r.requests, cpy)
	r.mu.Unlock()

	if r.OnRequest != nil {
		r.OnRequest(cpy)
	}

	return r.next.Perform(ctx, req)
}

// Requests returns the recorded requests in arrival order.
func (r *Recorder) Requests() []*request.Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*request.Request, len(r.requests))
	copy(out, r.requests)

	return out
}

// Last returns the most recent request, or nil if none was recorded.
func (r *Recorder) Last() *request.Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.requests) == 0 {
		return nil
	}

	return r.requests[len(r.requests)-1]
}

// Reset discards all recorded requests.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.requests = nil
	r.mu.Unlock()
}
