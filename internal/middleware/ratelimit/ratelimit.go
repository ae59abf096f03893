// Package ratelimit implements a fixed-window per-client rate limiter
// for the HTTP API.
package ratelimit

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds rate limiter settings.
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// DefaultConfig returns the limits used by the API server.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

type window struct {
	lastSeen time.Time
	count    int
}

// Limiter tracks request counts per client IP over one-minute windows.
type Limiter struct {
	mu           sync.Mutex
	windows      map[string]*window
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	requestsPerMinute int
	cleanupInterval   time.Duration

	rejected int64
}

// NewLimiter creates a limiter and starts its background cleanup loop.
func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}

	l := &Limiter{
		windows:           make(map[string]*window),
		stopCleanup:       make(chan struct{}),
		requestsPerMinute: cfg.RequestsPerMinute,
		cleanupInterval:   cfg.CleanupInterval,
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request from clientIP fits in the current window.
func (l *Limiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[clientIP]
	if !ok {
		l.windows[clientIP] = &window{lastSeen: now, count: 1}
		return true
	}

	if now.Sub(w.lastSeen) > time.Minute {
		w.count = 1
		w.lastSeen = now
		return true
	}

	w.count++
	w.lastSeen = now
	if w.count > l.requestsPerMinute {
		atomic.AddInt64(&l.rejected, 1)
		return false
	}
	return true
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeStale()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) removeStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, w := range l.windows {
		if w.lastSeen.Before(cutoff) {
			delete(l.windows, ip)
		}
	}
}

// ActiveClients returns the number of currently tracked client IPs.
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Metrics reports limiter activity for the metrics endpoint.
type Metrics struct {
	RejectedRequests int64 `json:"rejected_requests"`
	TrackedClients   int64 `json:"tracked_clients"`
}

// GetMetrics returns a snapshot of limiter activity.
func (l *Limiter) GetMetrics() Metrics {
	l.mu.Lock()
	tracked := int64(len(l.windows))
	l.mu.Unlock()

	return Metrics{
		RejectedRequests: atomic.LoadInt64(&l.rejected),
		TrackedClients:   tracked,
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	l.shutdownOnce.Do(func() {
		close(l.stopCleanup)
	})
}

// Middleware wraps a handler with rate limiting. extractIP resolves the
// client address and onLimit, when non-nil, writes the rejection response.
func (l *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(extractIP(r)) {
				if onLimit != nil {
					onLimit(w, r)
					return
				}
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
