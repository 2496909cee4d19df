package client

import (
	"context"
	"net/url"
	"sync"

	"github.com/adamwoolhether/jsonapi/request"
)

// Executor runs completion handlers for [Go].
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a function into an [Executor].
type ExecutorFunc func(fn func())

// Execute calls f(fn).
func (f ExecutorFunc) Execute(fn func()) {
	f(fn)
}

// Inline runs handlers on the goroutine that finished the call.
var Inline Executor = ExecutorFunc(func(fn func()) { fn() })

type executorKey struct{}

// ContextWithExecutor returns a copy of ctx carrying ex. [Go] captures the
// executor from the context it is called with and delivers the completion
// through it.
func ContextWithExecutor(ctx context.Context, ex Executor) context.Context {
	return context.WithValue(ctx, executorKey{}, ex)
}

// ExecutorFromContext returns the executor stored by [ContextWithExecutor].
func ExecutorFromContext(ctx context.Context) (Executor, bool) {
	ex, ok := ctx.Value(executorKey{}).(Executor)
	return ex, ok && ex != nil
}

func (c *Client) executorFor(ctx context.Context) Executor {
	if ex, ok := ExecutorFromContext(ctx); ok {
		return ex
	}

	return c.executor
}

// Go performs a call on a new goroutine and hands the outcome to done via
// the executor active when Go was called: the one in ctx, else the
// client's [WithExecutor] value, else [Inline]. If ctx ends first, done is
// never called.
func Go[U, E any](ctx context.Context, c *Client, method request.Method, base *url.URL, done func(U, error), opts ...CallOption) {
	ex := c.executorFor(ctx)

	go func() {
		v, err := execute[U, E](ctx, c, method, base, opts)
		if ctx.Err() != nil {
			return
		}

		ex.Execute(func() {
			if ctx.Err() != nil {
				return
			}
			done(v, err)
		})
	}()
}

// Future is the pending outcome of [Async].
type Future[U any] struct {
	done chan struct{}
	v    U
	err  error
}

// Async starts a call on a new goroutine and returns immediately.
func Async[U, E any](ctx context.Context, c *Client, method request.Method, base *url.URL, opts ...CallOption) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.v, f.err = execute[U, E](ctx, c, method, base, opts)
	}()

	return f
}

// Done is closed once the call has completed.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call completes or ctx ends. Ending ctx only stops
// the wait; the call itself is bound to the context given to [Async].
func (f *Future[U]) Await(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.v, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Queue is a serial [Executor]. Handlers are buffered until the owner of
// the queue runs them with [Queue.Run] or [Queue.RunPending], so they
// execute on the owner's goroutine in submission order.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	notify  chan struct{}
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Execute enqueues fn. It never blocks.
func (q *Queue) Execute(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// RunPending runs every queued handler on the calling goroutine and
// returns how many ran.
func (q *Queue) RunPending() int {
	var n int
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return n
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
		n++
	}
}

// Run processes handlers on the calling goroutine until ctx ends.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.RunPending()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
}
