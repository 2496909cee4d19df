// Package jsonapi exposes the client builder.
package jsonapi

import (
	"github.com/adamwoolhether/jsonapi/client"
)

// NewClient instantiates a new *client.Client with the provided options.
// Without options requests go through a fresh net/http client that follows
// redirects.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}
