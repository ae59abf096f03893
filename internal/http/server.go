// Package http exposes the tracker's JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/srxshiv/personal-finance-tracker/internal/cache"
	"github.com/srxshiv/personal-finance-tracker/internal/core"
	"github.com/srxshiv/personal-finance-tracker/internal/currency"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
	"github.com/srxshiv/personal-finance-tracker/internal/middleware/ratelimit"
	"github.com/srxshiv/personal-finance-tracker/internal/middleware/security"
	"github.com/srxshiv/personal-finance-tracker/internal/middleware/trace"
	"github.com/srxshiv/personal-finance-tracker/internal/services"
)

// Server wires the tracker service behind the JSON API with tracing,
// rate limiting and response caching for the derived endpoints.
type Server struct {
	http.Server

	service    *services.TrackerService
	logger     *applog.Logger
	structured *applog.StructuredLogger
	formatter  core.CurrencyFormatter

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Tracer

	// Derived results are cached until the next write invalidates them.
	comparisonCache *cache.LRUCache[[]core.BudgetComparison]
	insightsCache   *cache.LRUCache[[]core.SpendingInsight]
	summaryCache    *cache.LRUCache[services.Summary]
	cacheManager    *cache.Manager

	shutdownOnce sync.Once
}

// Config holds the server's tunables.
type Config struct {
	Addr      string
	CacheTTL  time.Duration
	RateLimit ratelimit.Config
}

// NewServer builds a fully routed server. The caller runs
// ListenAndServe and Shutdown.
func NewServer(cfg Config, svc *services.TrackerService, logger *applog.Logger) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:         cfg.Addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		service:    svc,
		logger:     logger.WithComponent(applog.ComponentHTTP),
		structured: applog.NewStructuredLogger(logger),
		formatter:  currency.INR{},
		limiter:    ratelimit.NewLimiter(cfg.RateLimit),
		detector:   security.NewDetector(),

		comparisonCache: cache.NewLRUCache[[]core.BudgetComparison](64, cfg.CacheTTL),
		insightsCache:   cache.NewLRUCache[[]core.SpendingInsight](4, cfg.CacheTTL),
		summaryCache:    cache.NewLRUCache[services.Summary](4, cfg.CacheTTL),
		cacheManager:    cache.NewManager(),
	}
	s.tracer = trace.New(logger, s.detector.ExtractClientIP)

	s.cacheManager.Register(s.comparisonCache)
	s.cacheManager.Register(s.insightsCache)
	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/export", s.handleExportCSV)
	mux.HandleFunc("POST /api/transactions/import", s.handleImportCSV)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/budgets/comparison", s.handleComparison)
	mux.HandleFunc("GET /api/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	s.Handler = s.tracer.Middleware(
		applog.Middleware(s.logger)(
			applog.RequestIDMiddleware(func(r *http.Request) string { return trace.GetRequestID(r.Context()) })(
				security.HeadersMiddleware(security.DefaultHeadersConfig())(
					s.limiter.Middleware(s.detector.ExtractClientIP, s.rateLimited)(
						s.suspicionMiddleware(mux))))))

	return s
}

// suspicionMiddleware counts and logs probe-looking requests without
// blocking them.
func (s *Server) suspicionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.Warn("Suspicious request",
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, try again later")
}

// invalidateDerived drops every cached derived result. Any write can
// change comparisons, insights and the summary.
func (s *Server) invalidateDerived() {
	s.comparisonCache.Clear()
	s.insightsCache.Clear()
	s.summaryCache.Clear()
}

// Shutdown stops background loops and then the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.service.ListBudgets(ctx, ""); err != nil {
		s.logger.Error("Readiness check failed", applog.FieldError, err.Error())
		writeError(w, r, http.StatusServiceUnavailable, "store not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":   s.tracer.GetMetrics(),
		"rate_limit": s.limiter.GetMetrics(),
		"security":   s.detector.GetMetrics(),
		"cache": map[string]int{
			"comparison_entries": s.comparisonCache.Size(),
			"insights_entries":   s.insightsCache.Size(),
			"summary_entries":    s.summaryCache.Size(),
		},
	})
}
