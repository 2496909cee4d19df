// Package request builds the immutable [Request] values the client hands to
// a transport.
//
// A request URL is resolved by treating the resource as a plain suffix of
// the base location: trailing slashes are trimmed from the base, leading
// slashes from the resource, and the two are joined with a single "/".
// A "?" inside the resource therefore starts the query string, which is
// merged with any query parameters given to [Build]. Only the base's path
// takes part in the join: a query on the base is kept ahead of the
// resource's own, and a fragment on the base is dropped.
//
//	base, _ := url.Parse("https://api.example.com/v1/")
//	req, err := request.Build(request.Params{
//		Method:   request.MethodGet,
//		Base:     base,
//		Resource: "/users/1",
//		Query:    map[string]any{"expand": true},
//	})
//	// req.URL == https://api.example.com/v1/users/1?expand=true
package request
