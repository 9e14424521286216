package parser

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftRecord is the intermediate shape a grammar produces before
// canonicalization. It exists only within a single parse call and is
// never persisted as-is.
type DraftRecord struct {
	// Line is the assembled logical line exactly as pasted, kept for audit.
	Line string

	// Date is the boundary-marker timestamp, UTC.
	Date time.Time

	// Amount is signed as written on the statement (negative = money out).
	Amount decimal.Decimal

	// Balance is the running balance after the transaction. When the
	// statement carries only one monetary token, Balance is zero.
	Balance decimal.Decimal

	// Description is the free text between the boundary marker and the
	// trailing monetary tokens.
	Description string
}
