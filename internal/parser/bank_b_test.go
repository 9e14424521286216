package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBankBParse(t *testing.T) {
	input := "16.10.2025 K.Kartı Ödeme 5499 **** **** 0015 Kart Ödemesi -79,52 TL 0,00 TL"

	p := &bankBParser{}
	drafts := p.Parse(input)
	if len(drafts) != 1 {
		t.Fatalf("Parse returned %d drafts, want 1", len(drafts))
	}

	d := drafts[0]
	wantDate := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	if !d.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", d.Date, wantDate)
	}
	if !d.Amount.Equal(decimal.RequireFromString("-79.52")) {
		t.Errorf("Amount = %s, want -79.52", d.Amount)
	}
	if !d.Balance.Equal(decimal.Zero) {
		t.Errorf("Balance = %s, want 0", d.Balance)
	}
	if d.Description != "K.Kartı Ödeme 5499 **** **** 0015 Kart Ödemesi" {
		t.Errorf("Description = %q", d.Description)
	}
}

func TestBankBParseSingleMonetaryToken(t *testing.T) {
	// Some portal views omit the balance column entirely; the lone token
	// is the amount and the balance defaults to zero.
	input := "02.11.2025 Fatura Ödemesi Elektrik -485,30 TL"

	p := &bankBParser{}
	drafts := p.Parse(input)
	if len(drafts) != 1 {
		t.Fatalf("Parse returned %d drafts, want 1", len(drafts))
	}
	if !drafts[0].Amount.Equal(decimal.RequireFromString("-485.30")) {
		t.Errorf("Amount = %s, want -485.30", drafts[0].Amount)
	}
	if !drafts[0].Balance.Equal(decimal.Zero) {
		t.Errorf("Balance = %s, want 0", drafts[0].Balance)
	}
}

func TestBankBParseIgnoresNonRecordLines(t *testing.T) {
	input := "Hesap Hareketleri\n16.10.2025 Havale 1.500,00 TL 2.000,00 TL\n\nSayfa 1/3\n17.10.2025 EFT -200,00 TL 1.800,00 TL"

	p := &bankBParser{}
	drafts := p.Parse(input)
	if len(drafts) != 2 {
		t.Fatalf("Parse returned %d drafts, want 2", len(drafts))
	}
	if !drafts[0].Amount.Equal(decimal.RequireFromString("1500")) {
		t.Errorf("first amount = %s, want 1500", drafts[0].Amount)
	}
	if !drafts[1].Amount.Equal(decimal.RequireFromString("-200")) {
		t.Errorf("second amount = %s, want -200", drafts[1].Amount)
	}
}
