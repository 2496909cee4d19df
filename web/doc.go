// Package web holds the request, response and validation helpers shared by
// the echo server's handlers and middleware.
package web
