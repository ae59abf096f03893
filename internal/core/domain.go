package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// IncomeCategory is the sentinel category assigned to every income
// transaction when it is recorded. Expense categories are free-form.
const IncomeCategory = "Income"

type (
	TransactionType string

	// Transaction is a single income or expense record. Dates are stored as
	// zero-padded "YYYY-MM-DD" strings so that month filtering reduces to a
	// lexical prefix match against a "YYYY-MM" month key.
	Transaction struct {
		ID          string
		Amount      Money
		Date        string
		Description string
		Type        TransactionType
		Category    string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Budget is a monthly spending cap for one category. The record store
	// guarantees at most one budget per (category, month) pair.
	Budget struct {
		ID        string
		Category  string
		Amount    Money
		Month     string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")

	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// IsValid reports whether the type is one of the two known kinds.
func (tt TransactionType) IsValid() bool {
	return tt == TypeIncome || tt == TypeExpense
}

// ValidateDate checks a "YYYY-MM-DD" date string. A time or zone suffix after
// the first ten characters is accepted and ignored.
func ValidateDate(s string) error {
	if len(s) < 10 {
		return ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", s[:10]); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateMonth checks a "YYYY-MM" month key.
func ValidateMonth(s string) error {
	if _, err := time.Parse("2006-01", s); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// InMonth reports whether the transaction date falls in the given month key.
func (t Transaction) InMonth(month string) bool {
	return strings.HasPrefix(t.Date, month)
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if err := ValidateMonth(b.Month); err != nil {
		return err
	}
	return nil
}

// MonthKey formats a time as a "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// PreviousMonth returns the first day of the month preceding t's month.
// Anchoring to the first of the month avoids the end-of-month normalization
// that AddDate applies to days 29-31.
func PreviousMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, -1, 0)
}
