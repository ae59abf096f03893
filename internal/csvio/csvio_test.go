package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srxshiv/personal-finance-tracker/internal/core"
)

func TestImport(t *testing.T) {
	input := strings.Join([]string{
		"date,description,type,category,amount",
		"2024-05-03,groceries,expense,Food & Dining,45.50",
		"2024-05-01,salary,income,Income,2500.00",
	}, "\n")

	result, err := Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Empty(t, result.Errors)

	first := result.Transactions[0]
	assert.Equal(t, int64(4550), first.Amount.Cents)
	assert.Equal(t, "2024-05-03", first.Date)
	assert.Equal(t, core.TypeExpense, first.Type)
	assert.Equal(t, "Food & Dining", first.Category)

	second := result.Transactions[1]
	assert.Equal(t, int64(250000), second.Amount.Cents)
	assert.Equal(t, core.TypeIncome, second.Type)
}

func TestImportSkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"date,description,type,category,amount",
		"2024-05-03,groceries,expense,Food & Dining,45.50",
		"2024-05-04,free lunch,expense,Food & Dining,0",
		"not-a-date,taxi,expense,Transportation,12.00",
		"2024-05-05,cinema,transfer,Entertainment,15.00",
	}, "\n")

	result, err := Import(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 1)
	require.Len(t, result.Errors, 3)

	// Line numbers count the header.
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, 4, result.Errors[1].Line)
	assert.Equal(t, 5, result.Errors[2].Line)
	assert.Contains(t, result.Errors[0].Error(), "line 3")
}

func TestImportRoundsThirdDecimal(t *testing.T) {
	input := strings.Join([]string{
		"date,description,type,category,amount",
		"2024-05-03,rounding up,expense,Other,1.005",
		"2024-05-03,rounding down,expense,Other,1.004",
	}, "\n")

	result, err := Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, int64(101), result.Transactions[0].Amount.Cents)
	assert.Equal(t, int64(100), result.Transactions[1].Amount.Cents)
}

func TestImportNormalizesFields(t *testing.T) {
	input := strings.Join([]string{
		"date,description,type,category,amount",
		"2024-05-03,  coffee  ,EXPENSE, Food & Dining ,3.50",
	}, "\n")

	result, err := Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	got := result.Transactions[0]
	assert.Equal(t, "coffee", got.Description)
	assert.Equal(t, core.TypeExpense, got.Type)
	assert.Equal(t, "Food & Dining", got.Category)
}

func TestImportForcesIncomeCategory(t *testing.T) {
	input := strings.Join([]string{
		"date,description,type,category,amount",
		"2024-05-01,salary,income,Shopping,5000.00",
		"2024-05-02,bonus,income,,1000.00",
	}, "\n")

	result, err := Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	for _, got := range result.Transactions {
		assert.Equal(t, core.IncomeCategory, got.Category)
	}
}

func TestImportMalformedCSV(t *testing.T) {
	input := "date,description\n\"unterminated"
	_, err := Import(strings.NewReader(input))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	transactions := []core.Transaction{
		{
			Amount:      core.Money{Cents: 4550},
			Date:        "2024-05-03",
			Description: "groceries",
			Type:        core.TypeExpense,
			Category:    "Food & Dining",
		},
		{
			Amount:      core.Money{Cents: 250000},
			Date:        "2024-05-01",
			Description: "salary",
			Type:        core.TypeIncome,
			Category:    core.IncomeCategory,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, transactions))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,description,type,category,amount", lines[0])
	assert.Contains(t, lines[1], "45.50")
	assert.Contains(t, lines[2], "2500.00")
}

func TestImportExportRoundTrip(t *testing.T) {
	transactions := []core.Transaction{
		{
			Amount:      core.Money{Cents: 1234},
			Date:        "2024-05-03",
			Description: "books",
			Type:        core.TypeExpense,
			Category:    "Education",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, transactions))

	result, err := Import(&buf)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, transactions[0].Amount, result.Transactions[0].Amount)
	assert.Equal(t, transactions[0].Category, result.Transactions[0].Category)
}
