package trace

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

func newTestTracer() *Tracer {
	return New(applog.New(applog.Config{Level: slog.LevelError, Component: applog.ComponentTrace}), nil)
}

func TestGenerateRequestID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		if !strings.HasPrefix(id, "req_") {
			t.Fatalf("id %q missing req_ prefix", id)
		}
		if len(id) != len("req_")+16 {
			t.Fatalf("id %q has unexpected length %d", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestMiddlewareSetsRequestID(t *testing.T) {
	tracer := newTestTracer()

	var ctxID string
	handler := tracer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	headerID := rec.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("X-Request-ID header missing")
	}
	if ctxID != headerID {
		t.Fatalf("context id %q != header id %q", ctxID, headerID)
	}
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("GetRequestID = %q, want empty", got)
	}
}

func TestMetricsCountByStatusClass(t *testing.T) {
	tracer := newTestTracer()

	serve := func(status int) {
		handler := tracer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	}

	serve(http.StatusOK)
	serve(http.StatusNotFound)
	serve(http.StatusUnprocessableEntity)
	serve(http.StatusInternalServerError)

	m := tracer.GetMetrics()
	if m.TotalRequests != 4 {
		t.Fatalf("TotalRequests = %d, want 4", m.TotalRequests)
	}
	if m.ClientErrors != 2 {
		t.Fatalf("ClientErrors = %d, want 2", m.ClientErrors)
	}
	if m.ServerErrors != 1 {
		t.Fatalf("ServerErrors = %d, want 1", m.ServerErrors)
	}
}

func TestImplicitStatusIsOK(t *testing.T) {
	tracer := newTestTracer()
	handler := tracer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if m := tracer.GetMetrics(); m.ClientErrors != 0 || m.ServerErrors != 0 {
		t.Fatalf("unexpected error counts: %+v", m)
	}
}
