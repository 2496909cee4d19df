package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/adamwoolhether/jsonapi/web/middleware"
	"github.com/adamwoolhether/jsonapi/web/mux"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	mw := middleware.Logger(debugLogger(&buf))
	handler := mw(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/hello", nil)
	r.RemoteAddr = "127.0.0.1:1234"

	handler(r.Context(), w, r)

	output := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=\"request started\"",
		"level=INFO msg=\"request completed\"",
		"method=GET",
		"path=/hello",
		"remote_addr=127.0.0.1:1234",
		"request_id=" + uuid.Nil.String(),
		"trace_id=" + uuid.Nil.String(),
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in log output: %s", want, output)
		}
	}
}

func TestLogger_StartOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(log)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	handler(r.Context(), httptest.NewRecorder(), r)

	output := buf.String()
	if strings.Contains(output, "request started") {
		t.Fatalf("start line logged above debug: %s", output)
	}
	if !strings.Contains(output, "request completed") {
		t.Fatalf("expected 'request completed' in log output: %s", output)
	}
}

func TestLogger_WithQuery(t *testing.T) {
	var buf bytes.Buffer

	handler := middleware.Logger(debugLogger(&buf))(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	r := httptest.NewRequest(http.MethodGet, "/search?q=test", nil)
	handler(r.Context(), httptest.NewRecorder(), r)

	if output := buf.String(); !strings.Contains(output, "q=test") {
		t.Fatalf("expected query string in log output: %s", output)
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := map[string]struct {
		status    int
		err       error
		wantLevel string
	}{
		"2xx":         {status: http.StatusCreated, wantLevel: "level=INFO"},
		"4xx":         {status: http.StatusBadRequest, wantLevel: "level=INFO"},
		"5xx":         {status: http.StatusServiceUnavailable, wantLevel: "level=WARN"},
		"escaped err": {status: http.StatusOK, err: errors.New("boom"), wantLevel: "level=WARN"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer

			app := mux.New(mux.WithLogger(slog.New(slog.DiscardHandler)), mux.WithMiddleware(middleware.Logger(debugLogger(&buf))))
			app.Get("/", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				mux.SetStatusCode(ctx, tc.status)
				w.WriteHeader(tc.status)
				return tc.err
			})

			app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			var completed string
			for line := range strings.Lines(buf.String()) {
				if strings.Contains(line, "request completed") {
					completed = line
				}
			}
			if !strings.Contains(completed, tc.wantLevel) {
				t.Fatalf("completion line %q, want %s", completed, tc.wantLevel)
			}
			if !strings.Contains(completed, "elapsed=") {
				t.Fatalf("expected elapsed in completion line: %s", completed)
			}
			if want := "status=" + strconv.Itoa(tc.status); !strings.Contains(completed, want) {
				t.Fatalf("expected %s in completion line: %s", want, completed)
			}
		})
	}
}
