package http

import (
	"net/http"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	month := sanitizeInput(r.URL.Query().Get("month"))
	if month != "" {
		if err := core.ValidateMonth(month); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	budgets, err := s.service.ListBudgets(r.Context(), month)
	if err != nil {
		s.logger.Error("List budgets failed", applog.FieldError, err.Error())
		writeDomainError(w, r, err)
		return
	}

	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, s.budgetResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := req.ToBudget()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	created, err := s.service.CreateBudget(r.Context(), b)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	s.logger.Info("Budget created",
		applog.FieldBudgetID, created.ID,
		applog.FieldCategory, created.Category,
		applog.FieldMonth, created.Month,
		applog.FieldAmountCents, created.Amount.Cents)
	writeJSON(w, http.StatusCreated, s.budgetResponse(created))
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	b, err := s.service.GetBudget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.budgetResponse(b))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := req.ToBudget()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	b.ID = r.PathValue("id")

	updated, err := s.service.UpdateBudget(r.Context(), b)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, s.budgetResponse(updated))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.service.DeleteBudget(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	s.logger.Info("Budget deleted", applog.FieldBudgetID, id)
	w.WriteHeader(http.StatusNoContent)
}
