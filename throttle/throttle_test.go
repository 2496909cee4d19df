package throttle_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adamwoolhether/jsonapi/throttle"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    throttle.Config
		expErr error
	}{
		{"zero rps", throttle.Config{RPS: 0, Burst: 10}, throttle.ErrMustNotBeZero},
		{"negative rps", throttle.Config{RPS: -5, Burst: 10}, throttle.ErrMustNotBeZero},
		{"zero burst", throttle.Config{RPS: 10, Burst: 0}, throttle.ErrMustNotBeZero},
		{"negative burst", throttle.Config{RPS: 10, Burst: -5}, throttle.ErrMustNotBeZero},
		{"valid", throttle.Config{RPS: 10, Burst: 20}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := throttle.New(tt.cfg, nil, http.DefaultTransport)
			if !errors.Is(err, tt.expErr) {
				t.Fatalf("exp err %v; got: %v", tt.expErr, err)
			}
			if tt.expErr == nil && rt == nil {
				t.Fatal("exp non-nil RoundTripper")
			}
		})
	}
}

func TestRoundTrip_SlowsDownBeyondBurst(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewTextHandler(&lockedWriter{w: &buf, mu: &mu}, nil))

	rt, err := throttle.New(throttle.Config{RPS: 20, Burst: 1}, func() *slog.Logger { return logger }, http.DefaultTransport)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	hc := &http.Client{Transport: rt}

	start := time.Now()
	for range 4 {
		resp, err := hc.Get(ts.URL)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		resp.Body.Close()
	}

	// One burst token, then three waits of ~50ms each.
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("requests were not throttled, took %v", elapsed)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(buf.String(), "throttle tokens exhausted") {
		t.Errorf("expected exhausted-token log, got:\n%s", buf.String())
	}
}

func TestRoundTrip_ContextEnded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	rt, err := throttle.New(throttle.Config{RPS: 1, Burst: 1}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL, nil)
	if _, err := rt.RoundTrip(req); !errors.Is(err, throttle.ErrContextEnded) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ErrContextEnded wrapping context.Canceled, got %v", err)
	}

	// Drain the single token, then wait with a deadline shorter than the refill.
	req, _ = http.NewRequestWithContext(t.Context(), http.MethodGet, ts.URL, nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	resp.Body.Close()

	ctx, cancel = context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	req, _ = http.NewRequestWithContext(ctx, http.MethodGet, ts.URL, nil)
	if _, err := rt.RoundTrip(req); !errors.Is(err, throttle.ErrWaitingFailed) {
		t.Fatalf("expected ErrWaitingFailed, got %v", err)
	}
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
