package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
	"github.com/srxshiv/personal-finance-tracker/internal/middleware/ratelimit"
	"github.com/srxshiv/personal-finance-tracker/internal/services"
	"github.com/srxshiv/personal-finance-tracker/internal/store/memory"
)

var testRef = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ...services.Option) *Server {
	t.Helper()

	opts = append([]services.Option{services.WithClock(func() time.Time { return testRef })}, opts...)
	svc := services.NewTrackerService(memory.New(), opts...)
	logger := applog.New(applog.Config{Level: slog.LevelError, Component: applog.ComponentHTTP})

	s := NewServer(Config{Addr: ":0", CacheTTL: time.Minute}, svc, logger)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func doJSON(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, target, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", target, rec.Code)
		}
	}
}

func TestSecurityHeadersOnAPIResponses(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/transactions", nil)
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing X-Content-Type-Options header")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestRateLimitReturnsJSONError(t *testing.T) {
	svc := services.NewTrackerService(memory.New())
	logger := applog.New(applog.Config{Level: slog.LevelError, Component: applog.ComponentHTTP})
	s := NewServer(Config{
		Addr:      ":0",
		CacheTTL:  time.Minute,
		RateLimit: ratelimit.Config{RequestsPerMinute: 2, CleanupInterval: time.Minute},
	}, svc, logger)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = doJSON(t, s, http.MethodGet, "/api/summary", nil)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}
	body := decodeBody[ErrorResponse](t, last)
	if body.Error == "" {
		t.Fatal("expected JSON error body")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodGet, "/api/summary", nil)
	rec := doJSON(t, s, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	metrics := decodeBody[map[string]json.RawMessage](t, rec)
	for _, key := range []string{"requests", "rate_limit", "security", "cache"} {
		if _, ok := metrics[key]; !ok {
			t.Fatalf("metrics missing %q section", key)
		}
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/nothing-here", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("first shutdown: %v", err)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}
