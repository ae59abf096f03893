// Package trace assigns request IDs and records per-request metrics
// and completion logs.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync/atomic"
	"time"

	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Metrics aggregates request counters for the metrics endpoint.
type Metrics struct {
	TotalRequests int64 `json:"total_requests"`
	ClientErrors  int64 `json:"client_errors"`
	ServerErrors  int64 `json:"server_errors"`
}

type collector struct {
	totalRequests int64
	clientErrors  int64
	serverErrors  int64
}

func (c *collector) record(status int) {
	atomic.AddInt64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddInt64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddInt64(&c.clientErrors, 1)
	}
}

func (c *collector) snapshot() Metrics {
	return Metrics{
		TotalRequests: atomic.LoadInt64(&c.totalRequests),
		ClientErrors:  atomic.LoadInt64(&c.clientErrors),
		ServerErrors:  atomic.LoadInt64(&c.serverErrors),
	}
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Tracer is request tracing middleware with shared counters.
type Tracer struct {
	logger    *applog.Logger
	extractIP func(*http.Request) string
	metrics   *collector
}

// New creates a Tracer. extractIP may be nil, in which case the raw
// remote address is logged.
func New(logger *applog.Logger, extractIP func(*http.Request) string) *Tracer {
	if extractIP == nil {
		extractIP = func(r *http.Request) string { return r.RemoteAddr }
	}
	return &Tracer{
		logger:    logger.WithComponent(applog.ComponentTrace),
		extractIP: extractIP,
		metrics:   &collector{},
	}
}

// Middleware tags each request with an ID, captures the response
// status and logs completion leveled by outcome.
func (t *Tracer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GenerateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rw, r.WithContext(ctx))
		duration := time.Since(start)

		t.metrics.record(rw.status)

		attrs := []any{
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.status,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, t.extractIP(r),
		}
		switch {
		case rw.status >= 500:
			t.logger.Error("Request failed", attrs...)
		case rw.status >= 400:
			t.logger.Warn("Request rejected", attrs...)
		default:
			t.logger.Debug("Request completed", attrs...)
		}
	})
}

// GetMetrics returns a snapshot of the request counters.
func (t *Tracer) GetMetrics() Metrics {
	return t.metrics.snapshot()
}

// GenerateRequestID returns a short random identifier of the form
// req_xxxxxxxxxxxxxxxx.
func GenerateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "req_" + hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return "req_" + hex.EncodeToString(b)
}

// GetRequestID extracts the request ID from a request context, or ""
// when the tracing middleware did not run.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
