// Command seed populates the configured backend with sample
// transactions and budgets for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/srxshiv/personal-finance-tracker/internal/backend"
	"github.com/srxshiv/personal-finance-tracker/internal/cli"
	"github.com/srxshiv/personal-finance-tracker/internal/core"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
)

var sampleExpenses = []struct {
	category    string
	description string
	minCents    int64
	maxCents    int64
}{
	{"Food & Dining", "groceries", 50000, 250000},
	{"Food & Dining", "dining out", 30000, 120000},
	{"Transportation", "fuel", 40000, 150000},
	{"Bills & Utilities", "electricity bill", 80000, 200000},
	{"Shopping", "online order", 20000, 300000},
	{"Entertainment", "movie night", 20000, 60000},
	{"Healthcare", "pharmacy", 10000, 50000},
	{"Other", "misc", 5000, 40000},
}

var sampleBudgets = map[string]int64{
	"Food & Dining":     800000,
	"Transportation":    400000,
	"Bills & Utilities": 500000,
	"Shopping":          600000,
	"Entertainment":     200000,
}

func main() {
	months := flag.Int("months", 3, "number of months of history to generate")
	perMonth := flag.Int("per-month", 12, "expense transactions per month")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentSeed)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))
	now := time.Now()

	var transactions, budgets int
	for m := 0; m < *months; m++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		monthKey := monthStart.Format("2006-01")

		if _, err := result.Store.CreateTransaction(ctx, core.Transaction{
			Amount:      core.Money{Cents: 5000000},
			Date:        monthStart.Format("2006-01-02"),
			Description: "monthly salary",
			Type:        core.TypeIncome,
			Category:    core.IncomeCategory,
		}); err != nil {
			logger.Error("Seed income failed", applog.FieldError, err.Error(), applog.FieldMonth, monthKey)
			os.Exit(1)
		}
		transactions++

		for i := 0; i < *perMonth; i++ {
			sample := sampleExpenses[rng.Intn(len(sampleExpenses))]
			cents := sample.minCents + rng.Int63n(sample.maxCents-sample.minCents+1)
			day := 1 + rng.Intn(28)

			if _, err := result.Store.CreateTransaction(ctx, core.Transaction{
				Amount:      core.Money{Cents: cents},
				Date:        fmt.Sprintf("%s-%02d", monthKey, day),
				Description: sample.description,
				Type:        core.TypeExpense,
				Category:    sample.category,
			}); err != nil {
				logger.Error("Seed expense failed", applog.FieldError, err.Error(), applog.FieldMonth, monthKey)
				os.Exit(1)
			}
			transactions++
		}

		for category, cents := range sampleBudgets {
			if _, err := result.Store.CreateBudget(ctx, core.Budget{
				Category: category,
				Amount:   core.Money{Cents: cents},
				Month:    monthKey,
			}); err != nil {
				// Re-running the seeder hits existing budgets; skip them.
				logger.Warn("Seed budget skipped", applog.FieldError, err.Error(), applog.FieldCategory, category, applog.FieldMonth, monthKey)
				continue
			}
			budgets++
		}
	}

	logger.Info("Seeding complete",
		"transactions", transactions,
		"budgets", budgets,
		"backend", cfg.DataBackend)
}
