package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ebolat/ekstre/internal/accounts"
	"github.com/ebolat/ekstre/internal/ingest"
	"github.com/ebolat/ekstre/internal/ledger"
)

var (
	_ accounts.Store           = (*Store)(nil)
	_ ingest.TransactionWriter = (*Store)(nil)
)

// SaveAccount writes the account document, overwriting any previous state.
func (s *Store) SaveAccount(ctx context.Context, account *ledger.Account) error {
	ref := s.client.Collection(accountsCollection).Doc(account.ID)
	if _, err := ref.Set(ctx, accountData(account)); err != nil {
		return fmt.Errorf("SaveAccount: %w", err)
	}
	return nil
}

// GetAccount loads one account by ID.
func (s *Store) GetAccount(ctx context.Context, id string) (*ledger.Account, error) {
	snap, err := s.client.Collection(accountsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("GetAccount: account %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}

	var doc accountDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("GetAccount: decoding %s: %w", id, err)
	}
	return doc.toLedger(), nil
}

// ListAccountsByUser returns the user's accounts, newest first.
func (s *Store) ListAccountsByUser(ctx context.Context, userID string) ([]*ledger.Account, error) {
	it := s.client.Collection(accountsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var accs []*ledger.Account
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListAccountsByUser: iterating: %w", err)
		}

		var doc accountDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("ListAccountsByUser: decoding %s: %w", snap.Ref.ID, err)
		}
		accs = append(accs, doc.toLedger())
	}

	return accs, nil
}

// DeleteAccount removes the account document. The transaction cascade is
// the registry's responsibility, via DeleteTransactionsByAccount.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.client.Collection(accountsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}
	return nil
}
