// Package throttle provides an [http.RoundTripper] that spaces outbound
// requests with a token bucket from [golang.org/x/time/rate].
//
//	rt, err := throttle.New(throttle.Config{RPS: 10, Burst: 5}, nil, http.DefaultTransport)
//	hc := &http.Client{Transport: rt}
//
// When tokens run out a request waits for one, or fails once its context
// ends. Nothing is retried.
package throttle
