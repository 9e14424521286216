package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/ebolat/ekstre/internal/ledger"
)

// maxWritesPerBatch is the Firestore limit on writes per commit.
const maxWritesPerBatch = 500

// SaveTransactions upserts a batch of transactions keyed by their
// content-addressed IDs, chunked at the store's per-commit limit. Writes
// use merge semantics, so re-submitting byte-identical input leaves the
// collection unchanged. Returns the number of documents written.
func (s *Store) SaveTransactions(ctx context.Context, txs []*ledger.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	// Within one paste the same line can repeat; identical records share an
	// ID, so only the last occurrence per ID is committed.
	byID := make(map[string]*ledger.Transaction, len(txs))
	order := make([]string, 0, len(txs))
	for _, tx := range txs {
		if _, ok := byID[tx.ID]; !ok {
			order = append(order, tx.ID)
		}
		byID[tx.ID] = tx
	}

	col := s.client.Collection(transactionsCollection)
	written := 0
	for start := 0; start < len(order); start += maxWritesPerBatch {
		end := start + maxWritesPerBatch
		if end > len(order) {
			end = len(order)
		}

		batch := s.client.Batch()
		for _, id := range order[start:end] {
			batch.Set(col.Doc(id), transactionData(byID[id]), firestore.MergeAll)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return written, fmt.Errorf("SaveTransactions: committing batch: %w", err)
		}
		written += end - start
	}

	return written, nil
}

// ListTransactionsByAccount returns an account's transactions, oldest first.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string) ([]*ledger.Transaction, error) {
	it := s.client.Collection(transactionsCollection).
		Where("accountId", "==", accountID).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	var txs []*ledger.Transaction
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactionsByAccount: iterating: %w", err)
		}

		var doc transactionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("ListTransactionsByAccount: decoding %s: %w", snap.Ref.ID, err)
		}
		txs = append(txs, doc.toLedger())
	}

	return txs, nil
}

// DeleteTransaction removes a single transaction by its ID.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.client.Collection(transactionsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	return nil
}

// DeleteTransactionsByAccount removes every transaction referencing the
// account, batched at the per-commit limit. Used by the registry's
// account-deletion cascade.
func (s *Store) DeleteTransactionsByAccount(ctx context.Context, accountID string) (int, error) {
	it := s.client.Collection(transactionsCollection).
		Where("accountId", "==", accountID).
		Documents(ctx)
	defer it.Stop()

	var refs []*firestore.DocumentRef
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("DeleteTransactionsByAccount: iterating: %w", err)
		}
		refs = append(refs, snap.Ref)
	}

	deleted := 0
	for start := 0; start < len(refs); start += maxWritesPerBatch {
		end := start + maxWritesPerBatch
		if end > len(refs) {
			end = len(refs)
		}

		batch := s.client.Batch()
		for _, ref := range refs[start:end] {
			batch.Delete(ref)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return deleted, fmt.Errorf("DeleteTransactionsByAccount: committing batch: %w", err)
		}
		deleted += end - start
	}

	return deleted, nil
}
