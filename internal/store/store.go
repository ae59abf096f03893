// Package store defines the persistence ports for transactions and budgets.
// Implementations live in store/memory and storage.
package store

import (
	"context"
	"errors"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
)

var (
	// ErrTransactionNotFound is returned when no transaction has the given ID.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBudgetNotFound is returned when no budget has the given ID.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrDuplicateBudget is returned when a budget already exists for the
	// same category and month.
	ErrDuplicateBudget = errors.New("budget already exists for this category and month")
)

type (
	// TransactionStore persists transactions. Create assigns the ID and
	// timestamps; Update preserves CreatedAt and refreshes UpdatedAt.
	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// BudgetStore persists budgets under a uniqueness guarantee of one
	// budget per (category, month) pair.
	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		GetBudget(ctx context.Context, id string) (core.Budget, error)
		UpdateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		DeleteBudget(ctx context.Context, id string) error

		// ListBudgets returns budgets for the given month, or all budgets
		// when month is empty.
		ListBudgets(ctx context.Context, month string) ([]core.Budget, error)
	}

	// Store is the combined persistence port.
	Store interface {
		TransactionStore
		BudgetStore
	}
)
