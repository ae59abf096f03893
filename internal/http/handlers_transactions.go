package http

import (
	"net/http"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.service.ListTransactions(r.Context())
	if err != nil {
		s.structured.LogError(r.Context(), "List transactions failed", err, applog.ComponentHTTP, applog.OpList, applog.NewFields())
		writeDomainError(w, r, err)
		return
	}

	month := sanitizeInput(r.URL.Query().Get("month"))
	if month != "" {
		if err := core.ValidateMonth(month); err != nil {
			writeDomainError(w, r, err)
			return
		}
		filtered := transactions[:0:0]
		for _, t := range transactions {
			if t.InMonth(month) {
				filtered = append(filtered, t)
			}
		}
		transactions = filtered
	}

	writeJSON(w, http.StatusOK, s.transactionResponses(transactions))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := req.ToTransaction()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	created, err := s.service.CreateTransaction(r.Context(), t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	s.structured.LogTransactionRecorded(r.Context(), created.ID, created.Category, string(created.Type), created.Amount.Cents)
	writeJSON(w, http.StatusCreated, s.transactionResponse(created))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.service.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.transactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := req.ToTransaction()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	t.ID = r.PathValue("id")

	updated, err := s.service.UpdateTransaction(r.Context(), t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, s.transactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.service.DeleteTransaction(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateDerived()
	s.logger.Info("Transaction deleted", applog.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}
