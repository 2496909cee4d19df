// Package transport performs built requests and returns fully buffered
// responses.
//
// [Transport] has a single method so tests can substitute the network with
// a [Recorder] or a [Func]. [HTTP] is the production implementation over
// [net/http]; redirects are followed by the underlying [http.Client] and
// only the final response is returned.
//
// Callback-style transports implement [AsyncTransport]. [Blocking] turns
// one into a [Transport] by parking the caller until the single completion
// fires, and [Background] does the reverse by running a blocking transport
// on its own goroutine.
package transport
