package ledger

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionID derives the content-addressed identifier for a transaction
// from its five stable fields. The same inputs always hash to the same ID,
// so re-ingesting overlapping pastes overwrites instead of duplicating.
//
// FNV-1a at 32 bits is deliberately small: for a personal statement ledger
// the collision probability is accepted as a bounded tradeoff, and two
// real-world transactions that agree on all five fields collapse into one
// record by design. This is not a cryptographic identifier.
func TransactionID(accountID string, date time.Time, amount decimal.Decimal, description string, direction Direction) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%d|%s|%s|%s",
		accountID,
		date.UnixMilli(),
		amount.String(),
		strings.TrimSpace(description),
		direction,
	)
	return fmt.Sprintf("t_%08x", h.Sum32())
}
