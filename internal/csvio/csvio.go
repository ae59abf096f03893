// Package csvio imports and exports transactions as CSV. Import is tolerant:
// bad rows are reported and skipped so one typo does not reject a whole file.
package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
)

// Row is the CSV schema. Amounts are decimal strings such as "45.50".
type Row struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Type        string `csv:"type"`
	Category    string `csv:"category"`
	Amount      string `csv:"amount"`
}

// RowError describes a rejected row. Line numbers count from 1 including the
// header, matching what a spreadsheet shows.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ImportResult separates accepted transactions from rejected rows.
type ImportResult struct {
	Transactions []core.Transaction
	Errors       []RowError
}

// Import parses CSV data into transactions. Rows that fail validation land in
// the result's Errors; only a malformed file as a whole returns an error.
func Import(r io.Reader) (ImportResult, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return ImportResult{}, fmt.Errorf("parse csv: %w", err)
	}

	result := ImportResult{
		Transactions: make([]core.Transaction, 0, len(rows)),
	}
	for i, row := range rows {
		line := i + 2 // header is line 1

		t, err := rowToTransaction(row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Err: err})
			continue
		}
		result.Transactions = append(result.Transactions, t)
	}
	return result, nil
}

// Export writes transactions as CSV with a header row.
func Export(w io.Writer, transactions []core.Transaction) error {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, Row{
			Date:        t.Date,
			Description: t.Description,
			Type:        string(t.Type),
			Category:    t.Category,
			Amount:      decimal.NewFromInt(t.Amount.Cents).Shift(-2).StringFixed(2),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func rowToTransaction(row Row) (core.Transaction, error) {
	cents, err := parseAmountToCents(row.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Amount:      core.Money{Cents: cents},
		Date:        strings.TrimSpace(row.Date),
		Description: strings.TrimSpace(row.Description),
		Type:        core.TransactionType(strings.ToLower(strings.TrimSpace(row.Type))),
		Category:    strings.TrimSpace(row.Category),
	}
	if t.Type == core.TypeIncome {
		t.Category = core.IncomeCategory
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// parseAmountToCents converts a decimal amount string to integer cents,
// rounding a third decimal half away from zero.
func parseAmountToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("invalid amount %q: must be positive", s)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
