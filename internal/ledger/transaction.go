package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ebolat/ekstre/internal/parser"
)

// DefaultCurrency is assumed when a statement carries no currency code.
const DefaultCurrency = "TRY"

// Direction encodes whether money left or entered the account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Transaction is the canonical, grammar-independent transaction shape.
// Amount is always a non-negative magnitude; Direction alone encodes the
// sign, regardless of which grammar produced the record.
type Transaction struct {
	// ID is content-addressed: identical account/date/amount/description/
	// direction five-tuples always produce the same ID, which is what makes
	// repeated ingestion of the same paste a no-op.
	ID string

	UserID    string
	AccountID string

	// Date is the statement timestamp, UTC.
	Date time.Time

	Amount   decimal.Decimal
	Currency string

	Direction   Direction
	Description string

	// BalanceAfter is the running balance printed next to the amount,
	// zero when the statement had no balance column for the record.
	BalanceAfter decimal.Decimal

	// Source is the grammar tag the record came from.
	Source parser.BankType

	// Raw preserves the original statement line for audit.
	Raw RawLine

	CreatedAt time.Time
}

// RawLine is the audit payload attached to every transaction: the grammar
// tag plus the assembled statement line exactly as pasted. Keeping it as a
// typed struct instead of an open map keeps the audit trail queryable.
type RawLine struct {
	Source parser.BankType
	Line   string
}

// Account is a registered bank account owned by a user. Transactions hold
// a non-owning back-reference via AccountID; deleting an account cascades
// to its transactions.
type Account struct {
	ID     string
	UserID string

	BankName    string
	AccountName string

	// IBAN, when present, is "TR" followed by 24 digits.
	IBAN string
	// AccountNumber is derived from the IBAN's last 8 characters.
	AccountNumber string

	Currency string

	CreatedAt time.Time
	UpdatedAt time.Time
}
