// Package client provides the generic request/response engine of jsonapi.
//
// Every call is parameterized by the response type U and the application
// error type E; the request body type is fixed by [WithBody]. A call encodes
// the body with the client's codec, builds the request, performs it through
// the client's transport and classifies the outcome with [Classify]. All
// calling conventions share that single path.
//
// # Building a Client
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// # Calling Conventions
//
// Blocking, with the failure as the returned error:
//
//	post, err := client.Do[Post, APIError](ctx, c, request.MethodPost, base,
//		client.WithResource("/post"),
//		client.WithBody(Post{Name: "example"}),
//	)
//
// Explicit result:
//
//	res := client.Fetch[Post, APIError](ctx, c, request.MethodGet, base)
//	if reqErr, ok := res.RequestError(); ok { ... }
//
// Completion callback, delivered on the executor captured from ctx:
//
//	q := client.NewQueue()
//	ctx = client.ContextWithExecutor(ctx, q)
//	client.Go[Post, APIError](ctx, c, request.MethodGet, base, func(p Post, err error) { ... })
//	go q.Run(ctx)
//
// Future:
//
//	f := client.Async[Post, APIError](ctx, c, request.MethodGet, base)
//	post, err := f.Await(ctx)
//
// Fire-and-forget, where an empty 2xx body is a success:
//
//	err := client.Send[APIError](ctx, c, request.MethodDelete, base, client.WithResource("/posts/1"))
//
// # Errors
//
// Failures are *[RequestError] values carrying one [Kind]. Each kind has a
// sentinel, so callers that don't know E can still use errors.Is:
//
//	if errors.Is(err, client.ErrApplication) { ... }
//
// When E implements error, errors.As reaches the decoded application error
// directly.
//
// # Cancellation
//
// Ending ctx aborts the in-flight request. A canceled call returns
// ctx.Err() rather than a RequestError, and callbacks are never invoked.
package client
