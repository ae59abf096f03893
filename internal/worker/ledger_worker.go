// Package worker consumes ledger sync messages and mirrors transactions into
// the spreadsheet ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srxshiv/personal-finance-tracker/internal/amqp"
	"github.com/srxshiv/personal-finance-tracker/internal/core"
	"github.com/srxshiv/personal-finance-tracker/internal/store"
)

// Ledger is the mirror target. *gsheet.Client satisfies it.
type Ledger interface {
	AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
	RemoveTransaction(ctx context.Context, id string) error
}

// LedgerWorker applies sync messages against the ledger. The message carries
// only the transaction ID; the worker always reads the current record so a
// reordered or replayed message cannot write stale data.
type LedgerWorker struct {
	store     store.TransactionStore
	ledger    Ledger
	batchSize int
}

func NewLedgerWorker(st store.TransactionStore, ledger Ledger, batchSize int) *LedgerWorker {
	return &LedgerWorker{
		store:     st,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single ledger sync message.
func (w *LedgerWorker) HandleMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	switch msg.Action {
	case amqp.ActionUpsert:
		return w.handleUpsert(ctx, msg.TransactionID)
	case amqp.ActionDelete:
		return w.handleDelete(ctx, msg.TransactionID)
	default:
		// Unknown actions are dropped rather than requeued forever.
		slog.WarnContext(ctx, "Dropping message with unknown action",
			"transaction_id", msg.TransactionID,
			"action", msg.Action)
		return nil
	}
}

func (w *LedgerWorker) handleUpsert(ctx context.Context, id string) error {
	t, err := w.store.GetTransaction(ctx, id)
	if errors.Is(err, store.ErrTransactionNotFound) {
		// Deleted between publish and consume; the delete message follows.
		slog.InfoContext(ctx, "Transaction gone before mirror, skipping",
			"transaction_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction %s: %w", id, err)
	}

	ref, err := w.ledger.AppendTransaction(ctx, t)
	if err != nil {
		return fmt.Errorf("mirror transaction %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Mirrored transaction to ledger",
		"transaction_id", id,
		"sheet_ref", ref,
		"amount_cents", t.Amount.Cents)
	return nil
}

func (w *LedgerWorker) handleDelete(ctx context.Context, id string) error {
	if err := w.ledger.RemoveTransaction(ctx, id); err != nil {
		return fmt.Errorf("remove transaction %s from ledger: %w", id, err)
	}

	slog.InfoContext(ctx, "Removed transaction from ledger", "transaction_id", id)
	return nil
}

// StartupSyncCheck mirrors the most recent transactions on startup. It is a
// recovery path for messages missed while the worker was down; upserts are
// idempotent so re-mirroring is harmless.
func (w *LedgerWorker) StartupSyncCheck(ctx context.Context) error {
	transactions, err := w.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions for startup check: %w", err)
	}

	limit := w.batchSize * 5
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}

	if len(transactions) == 0 {
		slog.InfoContext(ctx, "No transactions to verify on startup")
		return nil
	}

	successCount := 0
	errorCount := 0
	for _, t := range transactions {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := w.ledger.AppendTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror transaction during startup",
				"transaction_id", t.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(transactions),
		"synced", successCount,
		"errors", errorCount)
	return nil
}
