package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/ebolat/ekstre/internal/parser"
)

// Canonicalize maps draft records from one parse call onto the canonical
// transaction shape. The statement sign convention is unified here: the
// amount becomes a magnitude and a leading "-" on the draft becomes
// DirectionDebit. Records come back sorted oldest-first regardless of the
// order the grammar emitted them in.
func Canonicalize(userID, accountID string, source parser.BankType, drafts []parser.DraftRecord, now time.Time) []*Transaction {
	txs := make([]*Transaction, 0, len(drafts))
	for _, d := range drafts {
		direction := DirectionCredit
		if d.Amount.IsNegative() {
			direction = DirectionDebit
		}

		amount := d.Amount.Abs()
		description := strings.TrimSpace(d.Description)

		txs = append(txs, &Transaction{
			ID:           TransactionID(accountID, d.Date, amount, description, direction),
			UserID:       userID,
			AccountID:    accountID,
			Date:         d.Date.UTC(),
			Amount:       amount,
			Currency:     DefaultCurrency,
			Direction:    direction,
			Description:  description,
			BalanceAfter: d.Balance,
			Source:       source,
			Raw: RawLine{
				Source: source,
				Line:   d.Line,
			},
			CreatedAt: now,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})

	return txs
}
