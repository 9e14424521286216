package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ebolat/ekstre/internal/parser"
)

func TestCanonicalizeDirections(t *testing.T) {
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	drafts := []parser.DraftRecord{
		{
			Line:        "debit line",
			Date:        time.Date(2025, 10, 11, 0, 41, 43, 0, time.UTC),
			Amount:      decimal.RequireFromString("-750.00"),
			Description: "  Diğer Internet  ",
		},
		{
			Line:        "credit line",
			Date:        time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("2500"),
			Balance:     decimal.RequireFromString("14903.17"),
			Description: "HAVALE GELEN",
		},
	}

	txs := Canonicalize("user-1", "acc-1", parser.BankTypeA, drafts, now)
	if len(txs) != 2 {
		t.Fatalf("Canonicalize returned %d transactions, want 2", len(txs))
	}

	debit := txs[0]
	if debit.Direction != DirectionDebit {
		t.Errorf("Direction = %s, want %s", debit.Direction, DirectionDebit)
	}
	if !debit.Amount.Equal(decimal.RequireFromString("750")) {
		t.Errorf("Amount = %s, want the unsigned magnitude 750", debit.Amount)
	}
	if debit.Description != "Diğer Internet" {
		t.Errorf("Description = %q, want trimmed text", debit.Description)
	}
	if debit.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", debit.Currency, DefaultCurrency)
	}
	if debit.Raw.Line != "debit line" {
		t.Errorf("Raw.Line = %q", debit.Raw.Line)
	}
	if !debit.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", debit.CreatedAt, now)
	}

	credit := txs[1]
	if credit.Direction != DirectionCredit {
		t.Errorf("Direction = %s, want %s", credit.Direction, DirectionCredit)
	}
	if !credit.Amount.Equal(decimal.RequireFromString("2500")) {
		t.Errorf("Amount = %s, want 2500", credit.Amount)
	}
	if !credit.BalanceAfter.Equal(decimal.RequireFromString("14903.17")) {
		t.Errorf("BalanceAfter = %s", credit.BalanceAfter)
	}
}

func TestCanonicalizeSortsOldestFirst(t *testing.T) {
	now := time.Now()
	drafts := []parser.DraftRecord{
		{Date: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(3)},
		{Date: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1)},
		{Date: time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2)},
	}

	txs := Canonicalize("user-1", "acc-1", parser.BankTypeD, drafts, now)

	for i := 1; i < len(txs); i++ {
		if txs[i].Date.Before(txs[i-1].Date) {
			t.Fatalf("transactions not sorted oldest-first: %v after %v", txs[i].Date, txs[i-1].Date)
		}
	}
	if !txs[0].Amount.Equal(decimal.NewFromInt(1)) {
		t.Errorf("oldest transaction amount = %s, want 1", txs[0].Amount)
	}
}

func TestCanonicalizeStableForEqualDates(t *testing.T) {
	// Same-day records keep their statement order.
	date := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	drafts := []parser.DraftRecord{
		{Date: date, Amount: decimal.NewFromInt(1), Description: "first"},
		{Date: date, Amount: decimal.NewFromInt(2), Description: "second"},
	}

	txs := Canonicalize("user-1", "acc-1", parser.BankTypeB, drafts, time.Now())
	if txs[0].Description != "first" || txs[1].Description != "second" {
		t.Errorf("equal-date order changed: %q, %q", txs[0].Description, txs[1].Description)
	}
}

func TestCanonicalizeIdenticalDraftsShareID(t *testing.T) {
	date := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	draft := parser.DraftRecord{Date: date, Amount: decimal.NewFromInt(-10), Description: "POS"}

	txs := Canonicalize("user-1", "acc-1", parser.BankTypeB, []parser.DraftRecord{draft, draft}, time.Now())
	if txs[0].ID != txs[1].ID {
		t.Errorf("identical drafts got different IDs: %s vs %s", txs[0].ID, txs[1].ID)
	}
}
