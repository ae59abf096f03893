package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srxshiv/personal-finance-tracker/internal/amqp"
	"github.com/srxshiv/personal-finance-tracker/internal/core"
	"github.com/srxshiv/personal-finance-tracker/internal/store/memory"
)

type publishedMessage struct {
	transactionID string
	action        string
}

type fakePublisher struct {
	messages []publishedMessage
	err      error
}

func (f *fakePublisher) PublishLedgerSync(ctx context.Context, transactionID, action string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, publishedMessage{transactionID, action})
	return nil
}

var testRef = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*TrackerService, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	base := []Option{
		WithPublisher(pub),
		WithClock(func() time.Time { return testRef }),
	}
	svc := NewTrackerService(memory.New(), append(base, opts...)...)
	return svc, pub
}

func expenseOn(date, category string, cents int64) core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Description: category,
		Type:        core.TypeExpense,
		Category:    category,
	}
}

func TestCreateTransactionPublishes(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	created, err := svc.CreateTransaction(ctx, expenseOn("2024-05-03", "Food & Dining", 1200))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(pub.messages))
	}
	if pub.messages[0].transactionID != created.ID || pub.messages[0].action != amqp.ActionUpsert {
		t.Fatalf("unexpected message %+v", pub.messages[0])
	}
}

func TestDeleteTransactionPublishesDelete(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	created, err := svc.CreateTransaction(ctx, expenseOn("2024-05-03", "Food & Dining", 1200))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	last := pub.messages[len(pub.messages)-1]
	if last.action != amqp.ActionDelete || last.transactionID != created.ID {
		t.Fatalf("unexpected message %+v", last)
	}
}

func TestCreateTransactionSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)
	pub.err = errors.New("broker down")

	created, err := svc.CreateTransaction(ctx, expenseOn("2024-05-03", "Food & Dining", 1200))
	if err != nil {
		t.Fatalf("expected create to succeed despite publish failure, got %v", err)
	}

	if _, err := svc.GetTransaction(ctx, created.ID); err != nil {
		t.Fatalf("expected transaction stored, got %v", err)
	}
}

func TestCreateTransactionWithoutPublisher(t *testing.T) {
	svc := NewTrackerService(memory.New())
	if _, err := svc.CreateTransaction(context.Background(), expenseOn("2024-05-03", "Other", 100)); err != nil {
		t.Fatalf("create without publisher: %v", err)
	}
}

func TestCompareBudgets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CreateBudget(ctx, core.Budget{
		Category: "Food & Dining",
		Amount:   core.Money{Cents: 10000},
		Month:    "2024-05",
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if _, err := svc.CreateTransaction(ctx, expenseOn("2024-05-10", "Food & Dining", 12000)); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	got, err := svc.CompareBudgets(ctx, "2024-05")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 comparison, got %d", len(got))
	}
	if got[0].Status != core.StatusOver || got[0].Percentage != 120 {
		t.Fatalf("unexpected comparison %+v", got[0])
	}
}

func TestCompareBudgetsDefaultsToCurrentMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CreateBudget(ctx, core.Budget{
		Category: "Travel",
		Amount:   core.Money{Cents: 5000},
		Month:    "2024-05",
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	got, err := svc.CompareBudgets(ctx, "")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Travel" {
		t.Fatalf("expected the May budget via clock default, got %+v", got)
	}
}

func TestCompareBudgetsRejectsBadMonth(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CompareBudgets(context.Background(), "05-2024"); !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected invalid month error, got %v", err)
	}
}

func TestInsights(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, tx := range []core.Transaction{
		expenseOn("2024-05-05", "Food & Dining", 125000),
		expenseOn("2024-04-05", "Food & Dining", 100000),
	} {
		if _, err := svc.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	got, err := svc.Insights(ctx)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected insights")
	}
	if got[0].Title != "Spending Increased" {
		t.Fatalf("expected trend insight first, got %q", got[0].Title)
	}
}

func TestInsightsCustomSpikeFloor(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, WithSpikeFloor(1))

	// Small amounts that the default floor would suppress.
	for _, tx := range []core.Transaction{
		expenseOn("2024-05-05", "Shopping", 200),
		expenseOn("2024-04-05", "Shopping", 100),
	} {
		if _, err := svc.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	got, err := svc.Insights(ctx)
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	found := false
	for _, in := range got {
		if in.Title == "Category Spike" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected spike with lowered floor, got %+v", got)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CreateTransaction(ctx, core.Transaction{
		Amount:      core.Money{Cents: 500000},
		Date:        "2024-05-01",
		Description: "salary",
		Type:        core.TypeIncome,
		Category:    core.IncomeCategory,
	}); err != nil {
		t.Fatalf("create income: %v", err)
	}
	if _, err := svc.CreateTransaction(ctx, expenseOn("2024-05-02", "Food & Dining", 150000)); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	got, err := svc.Summary(ctx, 10)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.Totals.Balance.Cents != 350000 {
		t.Fatalf("expected balance 350000, got %d", got.Totals.Balance.Cents)
	}
	if len(got.Breakdown) != 1 || got.Breakdown[0].Category != "Food & Dining" {
		t.Fatalf("unexpected breakdown %+v", got.Breakdown)
	}
	if len(got.Recent) != 2 {
		t.Fatalf("expected 2 recent transactions, got %d", len(got.Recent))
	}
}
