package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/jsonapi/codec"
	"github.com/adamwoolhether/jsonapi/request"
	"github.com/adamwoolhether/jsonapi/throttle"
	"github.com/adamwoolhether/jsonapi/transport"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	transport         transport.Transport
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
	codec             codec.Settings
	executor          Executor
}

// WithTransport replaces the default HTTP transport. It cannot be combined
// with the options that configure the default transport.
func WithTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = t
		return nil
	}
}

// WithHTTPClient sets the [http.Client] the default transport copies its
// configuration from. The given client is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithRoundTripper sets the base [http.RoundTripper] of the default transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("round tripper must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests
// per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects makes the default transport return 3xx responses
// instead of following them.
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used to open a span per call. A no-op tracer
// is used by default.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithCodecSettings sets the initial date strategies of the client's codec.
func WithCodecSettings(s codec.Settings) Option {
	return func(o *options) error {
		o.codec = s
		return nil
	}
}

// WithExecutor sets the executor completion handlers run on when the
// calling context carries none. See [ContextWithExecutor].
func WithExecutor(ex Executor) Option {
	return func(o *options) error {
		if ex == nil {
			return errors.New("executor must not be nil")
		}
		o.executor = ex
		return nil
	}
}

func (o *options) configuresHTTP() bool {
	return o.client != nil || o.rt != nil || o.timeout != nil || o.userAgent != "" ||
		o.throttle != nil || o.noFollowRedirects
}

// httpClient assembles the *http.Client of the default transport. It works
// on a copy so neither a caller's client nor http.DefaultClient is mutated.
func (o *options) httpClient(logFn func() *slog.Logger) (*http.Client, error) {
	hc := &http.Client{}
	if o.client != nil {
		cpy := *o.client
		hc = &cpy
	}

	if o.timeout != nil {
		hc.Timeout = *o.timeout
	}

	if o.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case o.rt != nil:
		rt = o.rt
	case hc.Transport != nil:
		rt = hc.Transport
	default:
		rt = http.DefaultTransport
	}
	if o.userAgent != "" {
		rt = userAgent{value: o.userAgent, base: rt}
	}
	if o.throttle != nil {
		throttled, err := throttle.New(*o.throttle, logFn, rt)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		rt = throttled
	}
	hc.Transport = rt

	return hc, nil
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// CallOption is a functional option for a single call.
type CallOption func(*callOpts) error

type callOpts struct {
	resource  string
	headers   map[string]string
	params    map[string]any
	body      any
	hasBody   bool
	decorator func(*request.Request)
}

// WithResource sets the path appended to the base URL. Defaults to "/".
// A resource whose path carries its own scheme is rejected as an invalid
// request; the query after "?" may hold anything.
func WithResource(resource string) CallOption {
	return func(o *callOpts) error {
		path, _, _ := strings.Cut(resource, "?")
		if strings.Contains(path, "://") {
			return fmt.Errorf("resource %q must be a path, not a url", resource)
		}
		o.resource = resource
		return nil
	}
}

// WithHeaders sets request headers. They are applied after the default
// Content-Type, which they may override.
func WithHeaders(headers map[string]string) CallOption {
	return func(o *callOpts) error {
		o.headers = headers
		return nil
	}
}

// WithParams sets query parameters. Values are rendered with fmt.Sprint.
func WithParams(params map[string]any) CallOption {
	return func(o *callOpts) error {
		o.params = params
		return nil
	}
}

// WithBody sets the request body, encoded with the client's codec. A nil
// pointer encodes as JSON null; omit the option for a bodyless request.
func WithBody[T any](body T) CallOption {
	return func(o *callOpts) error {
		o.body = body
		o.hasBody = true
		return nil
	}
}

// WithDecorator registers fn to run on the built request immediately
// before it is dispatched. fn runs exactly once per call and may rewrite
// any field.
func WithDecorator(fn func(*request.Request)) CallOption {
	return func(o *callOpts) error {
		o.decorator = fn
		return nil
	}
}
