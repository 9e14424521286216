package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ebolat/ekstre/internal/ledger"
)

// Store is the persistence surface the registry needs. The Firestore
// implementation lives in internal/infra/firestore.
type Store interface {
	SaveAccount(ctx context.Context, account *ledger.Account) error
	GetAccount(ctx context.Context, id string) (*ledger.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]*ledger.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	DeleteTransactionsByAccount(ctx context.Context, accountID string) (int, error)
}

// Registry owns bank account records and their IBAN validation. It feeds
// account IDs to the statement parsers and cascades account deletion to
// the owned transactions.
type Registry struct {
	store Store
	clock func() time.Time
}

// NewRegistry creates a registry. clock may be nil, in which case
// time.Now is used; tests inject a fixed clock.
func NewRegistry(store Store, clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{store: store, clock: clock}
}

// CreateParams are the user-supplied fields for a new account.
type CreateParams struct {
	UserID      string
	BankName    string
	AccountName string
	IBAN        string
	Currency    string
}

// Create validates the params, derives the account number from the IBAN
// when one is supplied and persists the new account.
func (r *Registry) Create(ctx context.Context, params CreateParams) (*ledger.Account, error) {
	if strings.TrimSpace(params.UserID) == "" {
		return nil, &ValidationError{Field: "userId", Message: "user is required"}
	}
	if strings.TrimSpace(params.BankName) == "" {
		return nil, &ValidationError{Field: "bankName", Message: "bank name is required"}
	}

	now := r.clock().UTC()
	account := &ledger.Account{
		ID:          uuid.NewString(),
		UserID:      params.UserID,
		BankName:    strings.TrimSpace(params.BankName),
		AccountName: strings.TrimSpace(params.AccountName),
		Currency:    params.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if account.Currency == "" {
		account.Currency = ledger.DefaultCurrency
	}

	if strings.TrimSpace(params.IBAN) != "" {
		iban, err := NormalizeIBAN(params.IBAN)
		if err != nil {
			return nil, err
		}
		account.IBAN = iban
		account.AccountNumber = AccountNumberFromIBAN(iban)
	}

	if err := r.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("Create: saving account: %w", err)
	}

	return account, nil
}

// List returns the user's accounts.
func (r *Registry) List(ctx context.Context, userID string) ([]*ledger.Account, error) {
	accs, err := r.store.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return accs, nil
}

// Get returns one account by ID.
func (r *Registry) Get(ctx context.Context, id string) (*ledger.Account, error) {
	account, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return account, nil
}

// UpdateParams carries the editable fields; nil means "leave unchanged".
type UpdateParams struct {
	BankName    *string
	AccountName *string
	IBAN        *string
}

// Update applies the changed fields with the same IBAN validation as
// Create. Setting IBAN to the empty string clears it and the derived
// account number.
func (r *Registry) Update(ctx context.Context, id string, params UpdateParams) (*ledger.Account, error) {
	account, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Update: loading account: %w", err)
	}

	if params.BankName != nil {
		if strings.TrimSpace(*params.BankName) == "" {
			return nil, &ValidationError{Field: "bankName", Message: "bank name is required"}
		}
		account.BankName = strings.TrimSpace(*params.BankName)
	}
	if params.AccountName != nil {
		account.AccountName = strings.TrimSpace(*params.AccountName)
	}
	if params.IBAN != nil {
		if strings.TrimSpace(*params.IBAN) == "" {
			account.IBAN = ""
			account.AccountNumber = ""
		} else {
			iban, err := NormalizeIBAN(*params.IBAN)
			if err != nil {
				return nil, err
			}
			account.IBAN = iban
			account.AccountNumber = AccountNumberFromIBAN(iban)
		}
	}

	account.UpdatedAt = r.clock().UTC()

	if err := r.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("Update: saving account: %w", err)
	}

	return account, nil
}

// Delete removes the account and cascades to every transaction that
// references it.
func (r *Registry) Delete(ctx context.Context, id string) (int, error) {
	deleted, err := r.store.DeleteTransactionsByAccount(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("Delete: cascading transactions: %w", err)
	}
	if err := r.store.DeleteAccount(ctx, id); err != nil {
		return deleted, fmt.Errorf("Delete: deleting account: %w", err)
	}
	return deleted, nil
}
