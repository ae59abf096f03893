package http

import (
	"net/http"

	"github.com/srxshiv/personal-finance-tracker/internal/csvio"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

// handleImportCSV accepts a CSV document as the request body and
// records every valid row. Rows that fail to parse are reported back
// with their line numbers instead of aborting the import.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	result, err := csvio.Import(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid CSV: "+err.Error())
		return
	}

	resp := ImportResponse{Skipped: len(result.Errors)}
	for _, rowErr := range result.Errors {
		resp.Errors = append(resp.Errors, rowErr.Error())
	}

	for _, t := range result.Transactions {
		if _, err := s.service.CreateTransaction(r.Context(), t); err != nil {
			s.logger.Error("Import row failed", applog.FieldError, err.Error(), applog.FieldCategory, t.Category)
			resp.Skipped++
			resp.Errors = append(resp.Errors, err.Error())
			continue
		}
		resp.Imported++
	}

	if resp.Imported > 0 {
		s.invalidateDerived()
	}
	s.logger.Info("CSV import finished",
		applog.FieldCount, resp.Imported,
		"skipped", resp.Skipped)
	writeJSON(w, http.StatusOK, resp)
}

// handleExportCSV streams every transaction as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.service.ListTransactions(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := csvio.Export(w, transactions); err != nil {
		s.logger.Error("CSV export failed", applog.FieldError, err.Error())
	}
}
