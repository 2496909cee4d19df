package request

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Params are the inputs to [Build].
type Params struct {
	Method Method
	// Base is the origin plus an optional path prefix.
	Base *url.URL
	// Resource is appended to Base. Empty means "/". It must not carry its
	// own scheme.
	Resource string
	Header   map[string]string
	// Query values are rendered with fmt.Sprint and percent-encoded.
	Query map[string]any
	// Body is attached verbatim; it is expected to be already encoded.
	Body []byte
	// Decorator runs last and may rewrite any field. The result is not
	// validated again.
	Decorator func(*Request)
}

// Build resolves p into a [Request]. Every failure wraps [ErrInvalidRequest].
func Build(p Params) (*Request, error) {
	if !p.Method.Valid() {
		return nil, fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, p.Method)
	}

	u, err := resolve(p.Base, p.Resource)
	if err != nil {
		return nil, err
	}

	if len(p.Query) > 0 {
		if u, err = withQuery(u, p.Query); err != nil {
			return nil, err
		}
	}

	header := make(http.Header, len(p.Header)+1)
	header.Set("Content-Type", ContentTypeJSON)
	for k, v := range p.Header {
		header.Set(k, v)
	}

	req := Request{
		Method: p.Method,
		URL:    u,
		Header: header,
		Body:   p.Body,
	}

	if p.Decorator != nil {
		p.Decorator(&req)
	}

	return &req, nil
}

// resolve joins base and resource as described in the package docs.
func resolve(base *url.URL, resource string) (*url.URL, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: missing base url", ErrInvalidRequest)
	}

	// Only the path prefix takes part in the join; a query on base is merged
	// in front of the resource's own and a fragment is dropped.
	prefix := *base
	prefix.RawQuery, prefix.ForceQuery = "", false
	prefix.Fragment, prefix.RawFragment = "", ""

	raw := strings.TrimRight(prefix.String(), "/") + "/" + strings.TrimLeft(resource, "/")

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %q: %w", ErrInvalidRequest, raw, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute url", ErrInvalidRequest, raw)
	}

	switch {
	case base.RawQuery == "":
	case u.RawQuery == "":
		u.RawQuery = base.RawQuery
	default:
		u.RawQuery = base.RawQuery + "&" + u.RawQuery
	}

	return u, nil
}

// withQuery merges params into the query u already carries and verifies the
// composed url still parses.
func withQuery(u *url.URL, params map[string]any) (*url.URL, error) {
	var b strings.Builder
	b.WriteString(u.RawQuery)

	for name, value := range params {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprint(value)))
	}

	composed := *u
	composed.RawQuery = b.String()

	out, err := url.Parse(composed.String())
	if err != nil {
		return nil, fmt.Errorf("%w: composing query: %w", ErrInvalidRequest, err)
	}

	return out, nil
}
