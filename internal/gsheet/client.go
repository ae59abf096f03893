// Package gsheet mirrors transactions into a Google Sheets ledger. The sheet
// is a write-behind copy for people who want their data in a spreadsheet; the
// store stays the source of truth.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/srxshiv/personal-finance-tracker/internal/config"
	"github.com/srxshiv/personal-finance-tracker/internal/core"
)

// Ledger row layout: A=ID, B=Date, C=Description, D=Type, E=Category, F=Amount.
const ledgerColumns = "A:F"

type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
}

// New creates a sheets client from the application config. The credential can
// be inline JSON or a service account file.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName := cfg.GoogleSheetName
	if sheetName == "" {
		sheetName = "Ledger"
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheets.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	if inline := strings.TrimSpace(cfg.GoogleCredentialJSON); inline != "" {
		return []byte(inline), nil
	}
	if file := strings.TrimSpace(cfg.GoogleCredentialFile); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read credential file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("missing Google credentials (set GOOGLE_CREDENTIAL_JSON or GOOGLE_CREDENTIAL_FILE)")
}

// AppendTransaction writes one transaction to the ledger sheet and returns
// the row reference. An existing row with the same ID is overwritten so
// repeated upserts stay idempotent.
func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	row, err := c.findRowByID(ctx, t.ID)
	if err != nil {
		return "", err
	}

	values := [][]any{{
		t.ID,
		t.Date,
		t.Description,
		string(t.Type),
		t.Category,
		float64(t.Amount.Cents) / 100.0,
	}}

	if row > 0 {
		rng := fmt.Sprintf("%s!A%d:F%d", c.sheetName, row, row)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("update ledger row: %w", err)
		}
		return rng, nil
	}

	rng := fmt.Sprintf("%s!%s", c.sheetName, ledgerColumns)
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append ledger row: %w", err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		return resp.Updates.UpdatedRange, nil
	}
	return rng, nil
}

// RemoveTransaction clears the ledger row for the given transaction ID.
// A missing row is not an error; the row may never have been mirrored.
func (c *Client) RemoveTransaction(ctx context.Context, id string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	row, err := c.findRowByID(ctx, id)
	if err != nil {
		return err
	}
	if row == 0 {
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:F%d", c.sheetName, row, row)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear ledger row: %w", err)
	}
	return nil
}

// findRowByID scans the ID column and returns the 1-based row, or 0 when the
// ID is absent.
func (c *Client) findRowByID(ctx context.Context, id string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read ID column: %w", err)
	}

	for i, rowValues := range resp.Values {
		if len(rowValues) == 0 {
			continue
		}
		if s, ok := rowValues[0].(string); ok && s == id {
			return i + 1, nil
		}
	}
	return 0, nil
}
