package core

import (
	"fmt"
	"math"
	"time"
)

type InsightKind string

const (
	InsightTrend       InsightKind = "trend"
	InsightWarning     InsightKind = "warning"
	InsightAchievement InsightKind = "achievement"
	InsightTip         InsightKind = "tip"
)

// Insight heuristic thresholds, promoted to named constants so they can be
// tuned and tested independently of the branching logic.
const (
	// MaxInsights bounds the generated list; later-generated insights are
	// dropped first once the bound is reached.
	MaxInsights = 5

	// SpendingIncreasePercent is the month-over-month growth above which a
	// spending warning is emitted.
	SpendingIncreasePercent = 20.0

	// SavingsPercent is the month-over-month change below which a savings
	// achievement is emitted.
	SavingsPercent = -10.0

	// BudgetAlertPercent is the usage level at which an on-track budget
	// triggers a proximity alert.
	BudgetAlertPercent = 90.0

	// CategorySpikePercent is the per-category month-over-month growth above
	// which a spike is reported.
	CategorySpikePercent = 50.0

	// SpikeFloorCents suppresses spike noise on tiny categories: the current
	// month must exceed 100 currency units before a spike qualifies.
	SpikeFloorCents int64 = 100 * 100
)

// SpendingInsight is a generated natural-language observation about spending
// behavior. Value, when present, is a formatted currency string produced by
// the caller-supplied formatter.
type SpendingInsight struct {
	Kind        InsightKind
	Title       string
	Description string
	Category    string
	Value       string
}

// CurrencyFormatter renders a monetary amount for display. It is consumed
// only for insight values and plays no part in the numeric logic.
type CurrencyFormatter interface {
	Format(m Money) string
}

// GenerateInsights derives a prioritized list of at most MaxInsights insights
// from the transaction set and the given budget comparisons.
//
// The reference date determines the current month; the previous month is the
// one immediately preceding it. Insights are appended in a fixed order:
// month-over-month trend, per-comparison budget alerts (comparison order),
// per-category spikes (order of first appearance, current month first), and a
// fallback tip when nothing produced a warning. The inputs are never mutated
// and identical inputs yield identical output.
func GenerateInsights(transactions []Transaction, comparisons []BudgetComparison, ref time.Time, f CurrencyFormatter) []SpendingInsight {
	return GenerateInsightsWithSpikeFloor(transactions, comparisons, ref, f, SpikeFloorCents)
}

// GenerateInsightsWithSpikeFloor is GenerateInsights with a caller-chosen
// spike floor instead of the default.
func GenerateInsightsWithSpikeFloor(transactions []Transaction, comparisons []BudgetComparison, ref time.Time, f CurrencyFormatter, spikeFloorCents int64) []SpendingInsight {
	currentMonth := MonthKey(ref)
	previousMonth := MonthKey(PreviousMonth(ref))

	type pair struct {
		current  int64
		previous int64
	}
	byCategory := make(map[string]*pair)
	var order []string
	track := func(category string) *pair {
		p, ok := byCategory[category]
		if !ok {
			p = &pair{}
			byCategory[category] = p
			order = append(order, category)
		}
		return p
	}

	// Two passes so that current-month categories come first in discovery
	// order, then previous-month-only ones.
	var currentTotal, previousTotal int64
	for _, t := range transactions {
		if t.IsExpense() && t.InMonth(currentMonth) {
			currentTotal += t.Amount.Cents
			track(t.Category).current += t.Amount.Cents
		}
	}
	for _, t := range transactions {
		if t.IsExpense() && t.InMonth(previousMonth) {
			previousTotal += t.Amount.Cents
			track(t.Category).previous += t.Amount.Cents
		}
	}

	var insights []SpendingInsight

	// Month-over-month trend. A previous month with no spend produces no
	// trend insight at all.
	if previousTotal > 0 {
		change := percentChange(currentTotal, previousTotal)
		switch {
		case change > SpendingIncreasePercent:
			insights = append(insights, SpendingInsight{
				Kind:        InsightWarning,
				Title:       "Spending Increased",
				Description: fmt.Sprintf("Your spending is %.1f%% higher than last month", change),
				Value:       formatValue(f, Money{Cents: currentTotal - previousTotal}),
			})
		case change < SavingsPercent:
			insights = append(insights, SpendingInsight{
				Kind:        InsightAchievement,
				Title:       "Great Savings!",
				Description: fmt.Sprintf("You've reduced spending by %.1f%% compared to last month", math.Abs(change)),
				Value:       formatValue(f, Money{Cents: previousTotal - currentTotal}),
			})
		}
	}

	// Per-category budget alerts, in comparison order.
	for _, c := range comparisons {
		switch {
		case c.Status == StatusOver:
			insights = append(insights, SpendingInsight{
				Kind:        InsightWarning,
				Title:       "Budget Exceeded",
				Description: fmt.Sprintf("You've exceeded your %s budget by %.1f%%", c.Category, c.Percentage-100),
				Category:    c.Category,
				Value:       formatValue(f, c.Actual.Sub(c.Budgeted)),
			})
		case c.Status == StatusOnTrack && c.Percentage >= BudgetAlertPercent:
			insights = append(insights, SpendingInsight{
				Kind:        InsightWarning,
				Title:       "Budget Alert",
				Description: fmt.Sprintf("You're close to your %s budget limit", c.Category),
				Category:    c.Category,
				Value:       formatValue(f, c.Remaining),
			})
		}
	}

	// Per-category spikes across all categories seen in either month.
	for _, category := range order {
		p := byCategory[category]
		if p.previous <= 0 {
			continue
		}
		change := percentChange(p.current, p.previous)
		if change > CategorySpikePercent && p.current > spikeFloorCents {
			insights = append(insights, SpendingInsight{
				Kind:        InsightTrend,
				Title:       "Category Spike",
				Description: fmt.Sprintf("%s spending increased by %.1f%% this month", category, change),
				Category:    category,
				Value:       formatValue(f, Money{Cents: p.current - p.previous}),
			})
		}
	}

	if !containsWarning(insights) {
		insights = append(insights, SpendingInsight{
			Kind:        InsightTip,
			Title:       "Staying on Track",
			Description: "You're managing your budget well! Consider setting aside extra savings for future goals.",
		})
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

func percentChange(current, previous int64) float64 {
	return float64(current-previous) / float64(previous) * 100
}

func containsWarning(insights []SpendingInsight) bool {
	for _, in := range insights {
		if in.Kind == InsightWarning {
			return true
		}
	}
	return false
}

func formatValue(f CurrencyFormatter, m Money) string {
	if f == nil {
		return m.String()
	}
	return f.Format(m)
}
