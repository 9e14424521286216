package ingest

import (
	"context"

	"github.com/ebolat/ekstre/internal/ledger"
	"github.com/ebolat/ekstre/internal/parser"
)

// TransactionWriter persists a batch of canonical transactions keyed by
// their content-addressed IDs with merge semantics. Implemented by the
// Firestore store; tests supply an in-memory fake.
type TransactionWriter interface {
	SaveTransactions(ctx context.Context, txs []*ledger.Transaction) (int, error)
}

// RawArchiver keeps the original pasted text for audit. Archival is best
// effort: a failed archive never fails the ingest.
type RawArchiver interface {
	ArchiveRaw(ctx context.Context, accountID string, bankType parser.BankType, rawText string) (string, error)
}
