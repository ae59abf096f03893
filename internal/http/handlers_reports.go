package http

import (
	"net/http"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

const recentTransactionLimit = 10

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	month := sanitizeInput(r.URL.Query().Get("month"))
	if month != "" {
		if err := core.ValidateMonth(month); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	cacheKey := month
	if cacheKey == "" {
		cacheKey = "current"
	}
	if cached, ok := s.comparisonCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, s.comparisonResponses(cached))
		return
	}

	comparisons, err := s.service.CompareBudgets(r.Context(), month)
	if err != nil {
		s.logger.Error("Budget comparison failed", applog.FieldError, err.Error(), applog.FieldMonth, month)
		writeDomainError(w, r, err)
		return
	}

	s.comparisonCache.Set(cacheKey, comparisons)
	writeJSON(w, http.StatusOK, s.comparisonResponses(comparisons))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.insightsCache.Get("insights"); ok {
		writeJSON(w, http.StatusOK, insightResponses(cached))
		return
	}

	insights, err := s.service.Insights(r.Context())
	if err != nil {
		s.logger.Error("Insight generation failed", applog.FieldError, err.Error())
		writeDomainError(w, r, err)
		return
	}

	s.insightsCache.Set("insights", insights)
	writeJSON(w, http.StatusOK, insightResponses(insights))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.summaryCache.Get("summary"); ok {
		writeJSON(w, http.StatusOK, s.summaryResponse(cached))
		return
	}

	summary, err := s.service.Summary(r.Context(), recentTransactionLimit)
	if err != nil {
		s.logger.Error("Summary failed", applog.FieldError, err.Error())
		writeDomainError(w, r, err)
		return
	}

	s.summaryCache.Set("summary", summary)
	writeJSON(w, http.StatusOK, s.summaryResponse(summary))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	taxonomy := core.DefaultTaxonomy()
	out := make([]CategoryResponse, 0)
	for _, name := range taxonomy.Categories() {
		out = append(out, CategoryResponse{Name: name, Color: taxonomy.Color(name)})
	}
	writeJSON(w, http.StatusOK, out)
}
