package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ebolat/ekstre/internal/ledger"
	"github.com/ebolat/ekstre/internal/logger"
	"github.com/ebolat/ekstre/internal/parser"
)

// ErrNoTransactions reports that a paste produced zero valid records.
// Callers surface this as a "no transactions found" outcome, distinct
// from a parse crash, which cannot happen: grammars drop malformed
// records instead of failing.
var ErrNoTransactions = errors.New("no transactions found in input")

// Service runs the parse-canonicalize-write path for one pasted statement.
type Service struct {
	writer   TransactionWriter
	archiver RawArchiver
	clock    func() time.Time
}

// NewService wires the ingestion service. archiver may be nil to disable
// raw paste archival; clock may be nil, in which case time.Now is used.
func NewService(writer TransactionWriter, archiver RawArchiver, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{writer: writer, archiver: archiver, clock: clock}
}

// Result summarizes one ingest call.
type Result struct {
	// Parsed is the number of draft records the grammar extracted.
	Parsed int
	// Written is the number of documents committed to the store. Written
	// can be lower than Parsed when the paste repeats a line: identical
	// records share an ID and collapse into one upsert.
	Written int
	// ArchiveURI points at the stored raw paste, empty when archival is
	// disabled or failed.
	ArchiveURI string
	// IDs are the content-addressed IDs written, oldest first.
	IDs []string
}

// Ingest parses rawText with the selected bank grammar and upserts the
// canonical transactions for the account. Re-submitting the same text is
// idempotent: the content-addressed IDs make every write an overwrite of
// the identical document.
func (s *Service) Ingest(ctx context.Context, userID, accountID string, bankType parser.BankType, rawText string) (*Result, error) {
	log := logger.FromContext(ctx)

	p, err := parser.New(bankType)
	if err != nil {
		return nil, fmt.Errorf("Ingest: %w", err)
	}

	drafts := p.Parse(rawText)
	if len(drafts) == 0 {
		return nil, ErrNoTransactions
	}

	txs := ledger.Canonicalize(userID, accountID, bankType, drafts, s.clock().UTC())

	result := &Result{Parsed: len(drafts)}

	if s.archiver != nil {
		uri, err := s.archiver.ArchiveRaw(ctx, accountID, bankType, rawText)
		if err != nil {
			log.Warn().Err(err).Str("account_id", accountID).Msg("Raw paste archival failed")
		} else {
			result.ArchiveURI = uri
		}
	}

	written, err := s.writer.SaveTransactions(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("Ingest: writing transactions: %w", err)
	}
	result.Written = written

	seen := make(map[string]bool, len(txs))
	for _, tx := range txs {
		if !seen[tx.ID] {
			seen[tx.ID] = true
			result.IDs = append(result.IDs, tx.ID)
		}
	}

	log.Info().
		Str("account_id", accountID).
		Str("bank_type", string(bankType)).
		Int("parsed", result.Parsed).
		Int("written", result.Written).
		Msg("Statement ingested")

	return result, nil
}
