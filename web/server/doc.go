// Package server runs an HTTP handler until its context ends or the
// process is signalled, then drains in-flight requests.
//
//	srv := server.New(echo.Routes(log, tracer), server.WithHost("localhost:1337"))
//	if err := srv.Run(ctx); err != nil {
//		log.Error("server", "error", err)
//	}
package server
