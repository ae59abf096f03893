package core

// Status classification thresholds, in percent of the monthly cap. Both
// boundaries are inclusive on the on-track side: exactly 100% is on-track,
// exactly 80% is on-track.
const (
	overBudgetPercent = 100.0
	onTrackPercent    = 80.0
)

type BudgetStatus string

const (
	StatusUnder   BudgetStatus = "under"
	StatusOnTrack BudgetStatus = "on-track"
	StatusOver    BudgetStatus = "over"
)

// BudgetComparison contrasts a budget's cap against actual spend for the same
// category and month. Comparisons carry no identity; they are recomputed from
// the current snapshot on every call.
type BudgetComparison struct {
	Category   string
	Budgeted   Money
	Actual     Money
	Remaining  Money
	Percentage float64
	Status     BudgetStatus
}

// CompareBudgets derives one comparison per input budget, in input order.
//
// Actual spend is the sum of expense transactions whose date falls in the
// target month and whose category matches the budget's; categories with no
// matching transactions resolve to zero spend. A zero budget yields a zero
// percentage rather than a division fault. The inputs are never mutated.
func CompareBudgets(budgets []Budget, transactions []Transaction, month string) []BudgetComparison {
	spent := make(map[string]int64)
	for _, t := range transactions {
		if !t.IsExpense() || !t.InMonth(month) {
			continue
		}
		spent[t.Category] += t.Amount.Cents
	}

	comparisons := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		actual := Money{Cents: spent[b.Category]}

		percentage := 0.0
		if b.Amount.Cents > 0 {
			percentage = float64(actual.Cents) / float64(b.Amount.Cents) * 100
		}

		status := StatusUnder
		switch {
		case percentage > overBudgetPercent:
			status = StatusOver
		case percentage >= onTrackPercent:
			status = StatusOnTrack
		}

		comparisons = append(comparisons, BudgetComparison{
			Category:   b.Category,
			Budgeted:   b.Amount,
			Actual:     actual,
			Remaining:  b.Amount.Sub(actual),
			Percentage: percentage,
			Status:     status,
		})
	}
	return comparisons
}
