// Command echoserver runs the reflecting JSON server the client test suites
// talk to. It is configured through ECHO_* environment variables.
package main

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/adamwoolhether/jsonapi/web/echo"
	"github.com/adamwoolhether/jsonapi/web/server"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(context.Background(), log); err != nil {
		log.Error("echoserver", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	cfg, err := echo.LoadConfig()
	if err != nil {
		return err
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	log.Info("starting echoserver", "host", cfg.Host, "log_level", cfg.LogLevel)

	// Incoming traceparent headers join the caller's trace.
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	srv := server.New(
		echo.Routes(log, tp.Tracer("echoserver")),
		server.WithHost(cfg.Host),
		server.WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout, cfg.IdleTimeout),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithLogger(log),
		server.WithShutdownFunc(tp.Shutdown),
	)

	return srv.Run(ctx)
}
