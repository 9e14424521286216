package firestore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ebolat/ekstre/internal/ledger"
	"github.com/ebolat/ekstre/internal/parser"
)

const (
	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
)

// transactionDoc mirrors one document in the transactions collection. The
// document ID equals the content-addressed transaction ID, which is what
// turns every write into an upsert.
type transactionDoc struct {
	TransactionID string    `firestore:"transactionId"`
	UserID        string    `firestore:"userId"`
	AccountID     string    `firestore:"accountId"`
	Date          time.Time `firestore:"date"`
	Amount        float64   `firestore:"amount"`
	Currency      string    `firestore:"currency"`
	Type          string    `firestore:"type"`
	Description   string    `firestore:"description"`
	BalanceAfter  float64   `firestore:"balanceAfter"`
	Source        string    `firestore:"source"`
	RawSource     string    `firestore:"rawSource"`
	RawLine       string    `firestore:"rawLine"`
	CreatedAt     time.Time `firestore:"createdAt"`
}

// transactionData renders the merge payload for a Set with MergeAll, which
// requires map data. Amounts are stored as the store's double type; the
// exact decimal only matters before the ID is derived.
func transactionData(tx *ledger.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"transactionId": tx.ID,
		"userId":        tx.UserID,
		"accountId":     tx.AccountID,
		"date":          tx.Date,
		"amount":        tx.Amount.InexactFloat64(),
		"currency":      tx.Currency,
		"type":          string(tx.Direction),
		"description":   tx.Description,
		"balanceAfter":  tx.BalanceAfter.InexactFloat64(),
		"source":        string(tx.Source),
		"rawSource":     string(tx.Raw.Source),
		"rawLine":       tx.Raw.Line,
		"createdAt":     tx.CreatedAt,
	}
}

func (d *transactionDoc) toLedger() *ledger.Transaction {
	return &ledger.Transaction{
		ID:           d.TransactionID,
		UserID:       d.UserID,
		AccountID:    d.AccountID,
		Date:         d.Date.UTC(),
		Amount:       decimal.NewFromFloat(d.Amount),
		Currency:     d.Currency,
		Direction:    ledger.Direction(d.Type),
		Description:  d.Description,
		BalanceAfter: decimal.NewFromFloat(d.BalanceAfter),
		Source:       parser.BankType(d.Source),
		Raw: ledger.RawLine{
			Source: parser.BankType(d.RawSource),
			Line:   d.RawLine,
		},
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// accountDoc mirrors one document in the accounts collection.
type accountDoc struct {
	AccountID     string    `firestore:"accountId"`
	UserID        string    `firestore:"userId"`
	BankName      string    `firestore:"bankName"`
	AccountName   string    `firestore:"accountName"`
	IBAN          string    `firestore:"iban"`
	AccountNumber string    `firestore:"accountNumber"`
	Currency      string    `firestore:"currency"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

func accountData(a *ledger.Account) map[string]interface{} {
	return map[string]interface{}{
		"accountId":     a.ID,
		"userId":        a.UserID,
		"bankName":      a.BankName,
		"accountName":   a.AccountName,
		"iban":          a.IBAN,
		"accountNumber": a.AccountNumber,
		"currency":      a.Currency,
		"createdAt":     a.CreatedAt,
		"updatedAt":     a.UpdatedAt,
	}
}

func (d *accountDoc) toLedger() *ledger.Account {
	return &ledger.Account{
		ID:            d.AccountID,
		UserID:        d.UserID,
		BankName:      d.BankName,
		AccountName:   d.AccountName,
		IBAN:          d.IBAN,
		AccountNumber: d.AccountNumber,
		Currency:      d.Currency,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}
