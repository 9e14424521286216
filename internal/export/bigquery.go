// Package export pushes canonical transactions into a BigQuery dataset for
// offline analysis. The warehouse is a one-way mirror: Firestore stays the
// source of truth and the export can be re-run at any time, keyed by the
// same content-addressed transaction IDs.
package export

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/ebolat/ekstre/internal/ledger"
)

// TransactionRow mirrors the warehouse transactions table schema.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"`
	UserID        string `bigquery:"user_id"`
	AccountID     string `bigquery:"account_id"`

	TransactionDate civil.Date `bigquery:"transaction_date"`
	BookingTS       time.Time  `bigquery:"booking_ts"`

	Amount   *big.Rat `bigquery:"amount"` // NUMERIC
	Currency string   `bigquery:"currency"`

	Direction    string   `bigquery:"direction"`
	Description  string   `bigquery:"description"`
	BalanceAfter *big.Rat `bigquery:"balance_after"` // NUMERIC

	Source  string `bigquery:"source"`
	RawLine string `bigquery:"raw_line"`

	ExportedTS time.Time `bigquery:"exported_ts"`
}

// NewClient opens a BigQuery client for the project.
func NewClient(ctx context.Context, projectID string) (*bigquery.Client, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewClient: bigquery client: %w", err)
	}
	return client, nil
}

// ExportTransactions streams the transactions into dataset.table and
// returns the number of rows sent.
func ExportTransactions(ctx context.Context, client *bigquery.Client, datasetID, tableID string, txs []*ledger.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]*TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, toRow(tx, now))
	}

	inserter := client.Dataset(datasetID).Table(tableID).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return 0, fmt.Errorf("ExportTransactions: inserting rows: %w", err)
	}

	return len(rows), nil
}

func toRow(tx *ledger.Transaction, exportedTS time.Time) *TransactionRow {
	return &TransactionRow{
		TransactionID:   tx.ID,
		UserID:          tx.UserID,
		AccountID:       tx.AccountID,
		TransactionDate: civil.DateOf(tx.Date),
		BookingTS:       tx.Date,
		Amount:          tx.Amount.Rat(),
		Currency:        tx.Currency,
		Direction:       string(tx.Direction),
		Description:     tx.Description,
		BalanceAfter:    tx.BalanceAfter.Rat(),
		Source:          string(tx.Source),
		RawLine:         tx.Raw.Line,
		ExportedTS:      exportedTS,
	}
}
