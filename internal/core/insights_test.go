package core

import (
	"strings"
	"testing"
	"time"
)

var insightRef = time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

func findInsight(insights []SpendingInsight, title string) (SpendingInsight, bool) {
	for _, in := range insights {
		if in.Title == title {
			return in, true
		}
	}
	return SpendingInsight{}, false
}

func TestGenerateInsightsSpendingIncreased(t *testing.T) {
	txs := []Transaction{
		expense("Food & Dining", "2024-05-02", 125000),
		expense("Food & Dining", "2024-04-02", 100000),
	}

	got := GenerateInsights(txs, nil, insightRef, nil)
	in, ok := findInsight(got, "Spending Increased")
	if !ok {
		t.Fatalf("expected a Spending Increased insight, got %+v", got)
	}
	if in.Kind != InsightWarning {
		t.Fatalf("expected warning kind, got %s", in.Kind)
	}
	if !strings.Contains(in.Description, "25.0%") {
		t.Fatalf("expected 25.0%% in description, got %q", in.Description)
	}
	if in.Value != "250.00" {
		t.Fatalf("expected value 250.00, got %q", in.Value)
	}
	if _, ok := findInsight(got, "Staying on Track"); ok {
		t.Fatalf("fallback tip must not appear alongside a warning")
	}
}

func TestGenerateInsightsGreatSavings(t *testing.T) {
	txs := []Transaction{
		expense("Food & Dining", "2024-05-02", 80000),
		expense("Food & Dining", "2024-04-02", 100000),
	}

	got := GenerateInsights(txs, nil, insightRef, nil)
	in, ok := findInsight(got, "Great Savings!")
	if !ok {
		t.Fatalf("expected a Great Savings! insight, got %+v", got)
	}
	if in.Kind != InsightAchievement {
		t.Fatalf("expected achievement kind, got %s", in.Kind)
	}
	if !strings.Contains(in.Description, "20.0%") {
		t.Fatalf("expected 20.0%% in description, got %q", in.Description)
	}
	if in.Value != "200.00" {
		t.Fatalf("expected value 200.00, got %q", in.Value)
	}
}

func TestGenerateInsightsNoTrendWithoutPreviousSpend(t *testing.T) {
	txs := []Transaction{expense("Food & Dining", "2024-05-02", 500000)}

	got := GenerateInsights(txs, nil, insightRef, nil)
	if _, ok := findInsight(got, "Spending Increased"); ok {
		t.Fatalf("expected no trend insight without previous-month spend")
	}
}

func TestGenerateInsightsBudgetExceeded(t *testing.T) {
	comparisons := []BudgetComparison{{
		Category:   "Food & Dining",
		Budgeted:   Money{Cents: 10000},
		Actual:     Money{Cents: 12000},
		Remaining:  Money{Cents: -2000},
		Percentage: 120,
		Status:     StatusOver,
	}}

	got := GenerateInsights(nil, comparisons, insightRef, nil)
	in, ok := findInsight(got, "Budget Exceeded")
	if !ok {
		t.Fatalf("expected a Budget Exceeded insight, got %+v", got)
	}
	if !strings.Contains(in.Description, "20.0%") {
		t.Fatalf("expected overshoot of 20.0%% in description, got %q", in.Description)
	}
	if in.Category != "Food & Dining" {
		t.Fatalf("expected category set, got %q", in.Category)
	}
	if in.Value != "20.00" {
		t.Fatalf("expected value 20.00, got %q", in.Value)
	}
}

func TestGenerateInsightsBudgetAlert(t *testing.T) {
	comparisons := []BudgetComparison{{
		Category:   "Transportation",
		Budgeted:   Money{Cents: 10000},
		Actual:     Money{Cents: 9200},
		Remaining:  Money{Cents: 800},
		Percentage: 92,
		Status:     StatusOnTrack,
	}}

	got := GenerateInsights(nil, comparisons, insightRef, nil)
	in, ok := findInsight(got, "Budget Alert")
	if !ok {
		t.Fatalf("expected a Budget Alert insight, got %+v", got)
	}
	if in.Value != "8.00" {
		t.Fatalf("expected remaining 8.00, got %q", in.Value)
	}

	// Below the alert threshold nothing fires.
	comparisons[0].Actual = Money{Cents: 8500}
	comparisons[0].Remaining = Money{Cents: 1500}
	comparisons[0].Percentage = 85
	got = GenerateInsights(nil, comparisons, insightRef, nil)
	if _, ok := findInsight(got, "Budget Alert"); ok {
		t.Fatalf("expected no alert at 85%%")
	}
}

func TestGenerateInsightsCategorySpike(t *testing.T) {
	txs := []Transaction{
		expense("Shopping", "2024-05-05", 20000),
		expense("Shopping", "2024-04-05", 10000),
	}

	got := GenerateInsights(txs, nil, insightRef, nil)
	in, ok := findInsight(got, "Category Spike")
	if !ok {
		t.Fatalf("expected a Category Spike insight, got %+v", got)
	}
	if in.Kind != InsightTrend {
		t.Fatalf("expected trend kind, got %s", in.Kind)
	}
	if !strings.Contains(in.Description, "Shopping") || !strings.Contains(in.Description, "100.0%") {
		t.Fatalf("unexpected description %q", in.Description)
	}
	if in.Value != "100.00" {
		t.Fatalf("expected value 100.00, got %q", in.Value)
	}
}

func TestGenerateInsightsSpikeFloor(t *testing.T) {
	// 300% growth but the current month stays at or below the floor.
	txs := []Transaction{
		expense("Shopping", "2024-05-05", SpikeFloorCents),
		expense("Shopping", "2024-04-05", SpikeFloorCents/4),
	}

	got := GenerateInsights(txs, nil, insightRef, nil)
	if _, ok := findInsight(got, "Category Spike"); ok {
		t.Fatalf("expected spike suppressed below the floor")
	}
}

func TestGenerateInsightsFallbackTip(t *testing.T) {
	got := GenerateInsights(nil, nil, insightRef, nil)
	if len(got) != 1 {
		t.Fatalf("expected exactly the fallback tip, got %+v", got)
	}
	if got[0].Kind != InsightTip || got[0].Title != "Staying on Track" {
		t.Fatalf("unexpected fallback %+v", got[0])
	}
}

func TestGenerateInsightsTruncation(t *testing.T) {
	// One trend warning plus six exceeded budgets would be seven insights.
	txs := []Transaction{
		expense("Food & Dining", "2024-05-02", 200000),
		expense("Food & Dining", "2024-04-02", 100000),
	}
	categories := []string{"A", "B", "C", "D", "E", "F"}
	var comparisons []BudgetComparison
	for _, c := range categories {
		comparisons = append(comparisons, BudgetComparison{
			Category:   c,
			Budgeted:   Money{Cents: 100},
			Actual:     Money{Cents: 200},
			Remaining:  Money{Cents: -100},
			Percentage: 200,
			Status:     StatusOver,
		})
	}

	got := GenerateInsights(txs, comparisons, insightRef, nil)
	if len(got) != MaxInsights {
		t.Fatalf("expected %d insights, got %d", MaxInsights, len(got))
	}
	if got[0].Title != "Spending Increased" {
		t.Fatalf("expected trend first, got %q", got[0].Title)
	}
	for i, c := range categories[:4] {
		if got[i+1].Category != c {
			t.Fatalf("expected comparison order preserved, got %q at %d", got[i+1].Category, i+1)
		}
	}
}

type prefixFormatter struct{}

func (prefixFormatter) Format(m Money) string { return "INR " + m.String() }

func TestGenerateInsightsUsesFormatter(t *testing.T) {
	txs := []Transaction{
		expense("Food & Dining", "2024-05-02", 125000),
		expense("Food & Dining", "2024-04-02", 100000),
	}

	got := GenerateInsights(txs, nil, insightRef, prefixFormatter{})
	in, ok := findInsight(got, "Spending Increased")
	if !ok {
		t.Fatalf("expected a Spending Increased insight")
	}
	if in.Value != "INR 250.00" {
		t.Fatalf("expected formatted value, got %q", in.Value)
	}
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	txs := []Transaction{
		expense("Shopping", "2024-05-05", 20000),
		expense("Food & Dining", "2024-05-06", 30000),
		expense("Shopping", "2024-04-05", 10000),
		expense("Food & Dining", "2024-04-06", 10000),
	}

	first := GenerateInsights(txs, nil, insightRef, nil)
	for i := 0; i < 10; i++ {
		again := GenerateInsights(txs, nil, insightRef, nil)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: insight %d changed: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}
