package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
	"github.com/srxshiv/personal-finance-tracker/internal/store"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"with\x00control\x07chars", "withcontrolchars"},
		{"tabs\tand\nnewlines kept", "tabs\tand\nnewlines kept"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Fatalf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid date", err: core.ErrInvalidDate, want: http.StatusUnprocessableEntity},
		{name: "wrapped validation error", err: fmt.Errorf("create: %w", core.ErrInvalidAmount), want: http.StatusUnprocessableEntity},
		{name: "description too long", err: core.ErrDescriptionTooLong, want: http.StatusUnprocessableEntity},
		{name: "transaction not found", err: store.ErrTransactionNotFound, want: http.StatusNotFound},
		{name: "budget not found", err: store.ErrBudgetNotFound, want: http.StatusNotFound},
		{name: "duplicate budget", err: store.ErrDuplicateBudget, want: http.StatusConflict},
		{name: "unknown error", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			writeDomainError(rec, r, tt.err)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestWriteDomainErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	writeDomainError(rec, r, errors.New("dsn=user:secret@host"))

	body := decodeBody[ErrorResponse](t, rec)
	if body.Error != "internal error" {
		t.Fatalf("Error = %q, internal details should not leak", body.Error)
	}
}

func TestTransactionRequestToTransaction(t *testing.T) {
	t.Run("decimal amount", func(t *testing.T) {
		got, err := TransactionRequest{Amount: "12,34", Date: "2024-05-01", Description: "x", Type: "EXPENSE", Category: "Other"}.ToTransaction()
		if err != nil {
			t.Fatalf("ToTransaction: %v", err)
		}
		if got.Amount.Cents != 1234 {
			t.Fatalf("Cents = %d, want 1234", got.Amount.Cents)
		}
		if got.Type != core.TypeExpense {
			t.Fatalf("Type = %q, want expense", got.Type)
		}
	})

	t.Run("cents win over decimal", func(t *testing.T) {
		got, err := TransactionRequest{AmountCents: 500, Amount: "99.99", Date: "2024-05-01", Description: "x", Type: "expense", Category: "Other"}.ToTransaction()
		if err != nil {
			t.Fatalf("ToTransaction: %v", err)
		}
		if got.Amount.Cents != 500 {
			t.Fatalf("Cents = %d, want 500", got.Amount.Cents)
		}
	})

	t.Run("income category forced", func(t *testing.T) {
		got, err := TransactionRequest{AmountCents: 100, Date: "2024-05-01", Description: "salary", Type: "income", Category: "Shopping"}.ToTransaction()
		if err != nil {
			t.Fatalf("ToTransaction: %v", err)
		}
		if got.Category != core.IncomeCategory {
			t.Fatalf("Category = %q, want %q", got.Category, core.IncomeCategory)
		}
	})

	t.Run("invalid decimal", func(t *testing.T) {
		if _, err := (TransactionRequest{Amount: "abc", Date: "2024-05-01", Description: "x", Type: "expense", Category: "Other"}).ToTransaction(); err == nil {
			t.Fatal("expected error")
		}
	})
}
