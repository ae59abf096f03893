package http

import (
	"strings"
	"time"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
	"github.com/srxshiv/personal-finance-tracker/internal/services"
)

// TransactionRequest is the JSON body for creating or updating a
// transaction. Amount may be given either as integer cents or as a
// decimal string; cents win when both are present.
type TransactionRequest struct {
	AmountCents int64  `json:"amount_cents,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`
}

// ToTransaction converts the request into a domain transaction. Income
// transactions always carry the fixed income category, regardless of
// what the request sent.
func (req TransactionRequest) ToTransaction() (core.Transaction, error) {
	cents := req.AmountCents
	if cents == 0 && strings.TrimSpace(req.Amount) != "" {
		parsed, err := core.ParseDecimalToCents(req.Amount)
		if err != nil {
			return core.Transaction{}, err
		}
		cents = parsed
	}

	t := core.Transaction{
		Amount:      core.Money{Cents: cents},
		Date:        sanitizeInput(req.Date),
		Description: sanitizeInput(req.Description),
		Type:        core.TransactionType(strings.ToLower(strings.TrimSpace(req.Type))),
		Category:    sanitizeInput(req.Category),
	}
	if t.Type == core.TypeIncome {
		t.Category = core.IncomeCategory
	}
	return t, nil
}

// BudgetRequest is the JSON body for creating or updating a budget.
type BudgetRequest struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Month       string `json:"month"`
}

// ToBudget converts the request into a domain budget.
func (req BudgetRequest) ToBudget() (core.Budget, error) {
	cents := req.AmountCents
	if cents == 0 && strings.TrimSpace(req.Amount) != "" {
		parsed, err := core.ParseDecimalToCents(req.Amount)
		if err != nil {
			return core.Budget{}, err
		}
		cents = parsed
	}

	return core.Budget{
		Category: sanitizeInput(req.Category),
		Amount:   core.Money{Cents: cents},
		Month:    sanitizeInput(req.Month),
	}, nil
}

// TransactionResponse is the JSON representation of a transaction.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BudgetResponse is the JSON representation of a budget.
type BudgetResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Month       string    `json:"month"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ComparisonResponse is one budget-versus-actual row.
type ComparisonResponse struct {
	Category       string  `json:"category"`
	BudgetedCents  int64   `json:"budgeted_cents"`
	Budgeted       string  `json:"budgeted"`
	ActualCents    int64   `json:"actual_cents"`
	Actual         string  `json:"actual"`
	RemainingCents int64   `json:"remaining_cents"`
	Remaining      string  `json:"remaining"`
	Percentage     float64 `json:"percentage"`
	Status         string  `json:"status"`
}

// InsightResponse is one derived spending insight.
type InsightResponse struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Value       string `json:"value,omitempty"`
}

// BreakdownResponse is one category slice of the expense breakdown.
type BreakdownResponse struct {
	Category    string  `json:"category"`
	AmountCents int64   `json:"amount_cents"`
	Amount      string  `json:"amount"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

// SummaryResponse is the full dashboard payload.
type SummaryResponse struct {
	TotalIncomeCents   int64                 `json:"total_income_cents"`
	TotalIncome        string                `json:"total_income"`
	TotalExpensesCents int64                 `json:"total_expenses_cents"`
	TotalExpenses      string                `json:"total_expenses"`
	BalanceCents       int64                 `json:"balance_cents"`
	Balance            string                `json:"balance"`
	TransactionCount   int                   `json:"transaction_count"`
	Breakdown          []BreakdownResponse   `json:"breakdown"`
	Recent             []TransactionResponse `json:"recent"`
}

// CategoryResponse is one fixed expense category with its display color.
type CategoryResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ImportResponse reports the outcome of a CSV import.
type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func (s *Server) transactionResponse(t core.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		AmountCents: t.Amount.Cents,
		Amount:      s.formatter.Format(t.Amount),
		Date:        t.Date,
		Description: t.Description,
		Type:        string(t.Type),
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (s *Server) transactionResponses(ts []core.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, s.transactionResponse(t))
	}
	return out
}

func (s *Server) budgetResponse(b core.Budget) BudgetResponse {
	return BudgetResponse{
		ID:          b.ID,
		Category:    b.Category,
		AmountCents: b.Amount.Cents,
		Amount:      s.formatter.Format(b.Amount),
		Month:       b.Month,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (s *Server) comparisonResponses(cs []core.BudgetComparison) []ComparisonResponse {
	out := make([]ComparisonResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ComparisonResponse{
			Category:       c.Category,
			BudgetedCents:  c.Budgeted.Cents,
			Budgeted:       s.formatter.Format(c.Budgeted),
			ActualCents:    c.Actual.Cents,
			Actual:         s.formatter.Format(c.Actual),
			RemainingCents: c.Remaining.Cents,
			Remaining:      s.formatter.Format(c.Remaining),
			Percentage:     c.Percentage,
			Status:         string(c.Status),
		})
	}
	return out
}

func insightResponses(is []core.SpendingInsight) []InsightResponse {
	out := make([]InsightResponse, 0, len(is))
	for _, i := range is {
		out = append(out, InsightResponse{
			Kind:        string(i.Kind),
			Title:       i.Title,
			Description: i.Description,
			Category:    i.Category,
			Value:       i.Value,
		})
	}
	return out
}

func (s *Server) summaryResponse(sum services.Summary) SummaryResponse {
	resp := SummaryResponse{
		TotalIncomeCents:   sum.Totals.TotalIncome.Cents,
		TotalIncome:        s.formatter.Format(sum.Totals.TotalIncome),
		TotalExpensesCents: sum.Totals.TotalExpenses.Cents,
		TotalExpenses:      s.formatter.Format(sum.Totals.TotalExpenses),
		BalanceCents:       sum.Totals.Balance.Cents,
		Balance:            s.formatter.Format(sum.Totals.Balance),
		TransactionCount:   sum.Totals.Transactions,
		Breakdown:          make([]BreakdownResponse, 0, len(sum.Breakdown)),
		Recent:             s.transactionResponses(sum.Recent),
	}
	for _, b := range sum.Breakdown {
		resp.Breakdown = append(resp.Breakdown, BreakdownResponse{
			Category:    b.Category,
			AmountCents: b.Amount.Cents,
			Amount:      s.formatter.Format(b.Amount),
			Count:       b.Count,
			Percentage:  b.Percentage,
		})
	}
	return resp
}
