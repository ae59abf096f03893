// Package services orchestrates the record store, the derivation logic, and
// the ledger sync pipeline behind the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/srxshiv/personal-finance-tracker/internal/amqp"
	"github.com/srxshiv/personal-finance-tracker/internal/core"
	"github.com/srxshiv/personal-finance-tracker/internal/store"
)

// SyncPublisher notifies the ledger sync worker about transaction changes.
// *amqp.Client satisfies it; tests use a recording fake.
type SyncPublisher interface {
	PublishLedgerSync(ctx context.Context, transactionID, action string) error
}

// TrackerService exposes the application operations: transaction and budget
// CRUD, budget comparison, insight derivation, and summary statistics.
// Publishing failures never fail a write; the store is the source of truth
// and the worker catches up from it.
type TrackerService struct {
	store           store.Store
	publisher       SyncPublisher
	formatter       core.CurrencyFormatter
	spikeFloorCents int64
	now             func() time.Time
}

// Option configures a TrackerService.
type Option func(*TrackerService)

// WithPublisher attaches a sync publisher.
func WithPublisher(p SyncPublisher) Option {
	return func(s *TrackerService) { s.publisher = p }
}

// WithFormatter sets the currency formatter used for insight values.
func WithFormatter(f core.CurrencyFormatter) Option {
	return func(s *TrackerService) { s.formatter = f }
}

// WithSpikeFloor sets the minimum current-month spend for category spikes.
func WithSpikeFloor(cents int64) Option {
	return func(s *TrackerService) { s.spikeFloorCents = cents }
}

// WithClock sets the reference clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *TrackerService) { s.now = now }
}

func NewTrackerService(st store.Store, opts ...Option) *TrackerService {
	s := &TrackerService{
		store:           st,
		spikeFloorCents: core.SpikeFloorCents,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTransaction validates and stores a transaction, then notifies the
// ledger sync worker.
func (s *TrackerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publishSync(ctx, created.ID, amqp.ActionUpsert)
	return created, nil
}

func (s *TrackerService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TrackerService) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	updated, err := s.store.UpdateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.publishSync(ctx, updated.ID, amqp.ActionUpsert)
	return updated, nil
}

func (s *TrackerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishSync(ctx, id, amqp.ActionDelete)
	return nil
}

func (s *TrackerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *TrackerService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	return s.store.CreateBudget(ctx, b)
}

func (s *TrackerService) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	return s.store.GetBudget(ctx, id)
}

func (s *TrackerService) UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	return s.store.UpdateBudget(ctx, b)
}

func (s *TrackerService) DeleteBudget(ctx context.Context, id string) error {
	return s.store.DeleteBudget(ctx, id)
}

func (s *TrackerService) ListBudgets(ctx context.Context, month string) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx, month)
}

// CompareBudgets computes the comparison for every budget of the month.
// An empty month defaults to the current one.
func (s *TrackerService) CompareBudgets(ctx context.Context, month string) ([]core.BudgetComparison, error) {
	if month == "" {
		month = core.MonthKey(s.now())
	}
	if err := core.ValidateMonth(month); err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return core.CompareBudgets(budgets, transactions, month), nil
}

// Insights derives spending insights for the current month.
func (s *TrackerService) Insights(ctx context.Context) ([]core.SpendingInsight, error) {
	ref := s.now()
	month := core.MonthKey(ref)

	comparisons, err := s.CompareBudgets(ctx, month)
	if err != nil {
		return nil, err
	}
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return core.GenerateInsightsWithSpikeFloor(transactions, comparisons, ref, s.formatter, s.spikeFloorCents), nil
}

// Summary aggregates totals, the category breakdown, and recent activity.
type Summary struct {
	Totals    core.Summary
	Breakdown []core.CategoryBreakdown
	Recent    []core.Transaction
}

func (s *TrackerService) Summary(ctx context.Context, recentLimit int) (Summary, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list transactions: %w", err)
	}

	return Summary{
		Totals:    core.Summarize(transactions),
		Breakdown: core.BreakdownByCategory(transactions),
		Recent:    core.RecentTransactions(transactions, recentLimit),
	}, nil
}

func (s *TrackerService) publishSync(ctx context.Context, transactionID, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerSync(ctx, transactionID, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger sync message",
			"transaction_id", transactionID,
			"action", action,
			"error", err)
	}
}
