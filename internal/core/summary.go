package core

import (
	"sort"
	"time"
)

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategoryBreakdown extends the per-category aggregate with a transaction
// count and the share of total expenses.
type CategoryBreakdown struct {
	Category   string
	Amount     Money
	Count      int
	Percentage float64
}

// Summary is a compact overview of the whole transaction set.
type Summary struct {
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
	Transactions  int
}

// Summarize totals income and expenses across all transactions.
func Summarize(transactions []Transaction) Summary {
	var s Summary
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case TypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	s.Transactions = len(transactions)
	return s
}

// CategoryExpenses sums expense amounts per category, sorted by amount
// descending.
func CategoryExpenses(transactions []Transaction) []CategoryAmount {
	sums := make(map[string]int64)
	var order []string
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		if _, ok := sums[t.Category]; !ok {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// BreakdownByCategory aggregates expenses per category with counts and each
// category's share of total expenses, sorted by amount descending. With no
// expenses every percentage is zero.
func BreakdownByCategory(transactions []Transaction) []CategoryBreakdown {
	type agg struct {
		cents int64
		count int
	}
	sums := make(map[string]*agg)
	var order []string
	var total int64
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		a, ok := sums[t.Category]
		if !ok {
			a = &agg{}
			sums[t.Category] = a
			order = append(order, t.Category)
		}
		a.cents += t.Amount.Cents
		a.count++
		total += t.Amount.Cents
	}

	out := make([]CategoryBreakdown, 0, len(order))
	for _, name := range order {
		a := sums[name]
		pct := 0.0
		if total > 0 {
			pct = float64(a.cents) / float64(total) * 100
		}
		out = append(out, CategoryBreakdown{
			Category:   name,
			Amount:     Money{Cents: a.cents},
			Count:      a.count,
			Percentage: pct,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// RecentTransactions returns up to limit transactions ordered most recent
// first. Recency uses the creation timestamp, falling back to the transaction
// date when the timestamp is unset. The input slice is not modified.
func RecentTransactions(transactions []Transaction, limit int) []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return recency(out[i]).After(recency(out[j]))
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func recency(t Transaction) time.Time {
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt
	}
	if len(t.Date) >= 10 {
		if d, err := time.Parse("2006-01-02", t.Date[:10]); err == nil {
			return d
		}
	}
	return time.Time{}
}
