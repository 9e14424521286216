package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBankAParse(t *testing.T) {
	input := "11/10/2025 00:41:43 Diğer Internet - Mobil INT 479794******3221 1110 4142 -750,00 TL 0,00 TL"

	p := &bankAParser{}
	drafts := p.Parse(input)
	if len(drafts) != 1 {
		t.Fatalf("Parse returned %d drafts, want 1", len(drafts))
	}

	d := drafts[0]
	wantDate := time.Date(2025, 10, 11, 0, 41, 43, 0, time.UTC)
	if !d.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", d.Date, wantDate)
	}
	if !d.Amount.Equal(decimal.RequireFromString("-750")) {
		t.Errorf("Amount = %s, want -750", d.Amount)
	}
	if !d.Balance.Equal(decimal.Zero) {
		t.Errorf("Balance = %s, want 0", d.Balance)
	}
	wantDesc := "Diğer Internet - Mobil INT 479794******3221 1110 4142"
	if d.Description != wantDesc {
		t.Errorf("Description = %q, want %q", d.Description, wantDesc)
	}
}

func TestBankAParseMultiLineRecord(t *testing.T) {
	// The description wraps onto a second physical line without a
	// timestamp; the wrapped tail belongs to the same record.
	input := "11/10/2025 09:15:00 Havale Gönderilen AHMET\nYILMAZ Kira Ödemesi -12.500,00 TL 3.250,75 TL\n12/10/2025 10:00:00 Maaş Ödemesi 45.000,00 TL 48.250,75 TL"

	p := &bankAParser{}
	drafts := p.Parse(input)
	if len(drafts) != 2 {
		t.Fatalf("Parse returned %d drafts, want 2", len(drafts))
	}

	first := drafts[0]
	if first.Description != "Havale Gönderilen AHMET YILMAZ Kira Ödemesi" {
		t.Errorf("Description = %q", first.Description)
	}
	if !first.Amount.Equal(decimal.RequireFromString("-12500")) {
		t.Errorf("Amount = %s, want -12500", first.Amount)
	}
	if !first.Balance.Equal(decimal.RequireFromString("3250.75")) {
		t.Errorf("Balance = %s, want 3250.75", first.Balance)
	}

	second := drafts[1]
	if !second.Amount.Equal(decimal.RequireFromString("45000")) {
		t.Errorf("Amount = %s, want 45000", second.Amount)
	}
}

func TestBankAParseSkipsMalformedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no monetary token", "11/10/2025 00:41:43 Açıklama metni"},
		{"invalid date", "99/99/2025 00:41:43 Açıklama -750,00 TL 0,00 TL"},
		{"continuation before first boundary", "başıboş devam satırı -750,00 TL 0,00 TL"},
		{"empty input", ""},
	}

	p := &bankAParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if drafts := p.Parse(tt.input); len(drafts) != 0 {
				t.Errorf("Parse returned %d drafts, want 0", len(drafts))
			}
		})
	}
}

func TestBankAParseWindowsLineEndings(t *testing.T) {
	input := "11/10/2025 00:41:43 POS HARCAMA -100,00 TL 900,00 TL\r\n12/10/2025 08:00:00 HAVALE 50,00 TL 950,00 TL\r\n"

	p := &bankAParser{}
	drafts := p.Parse(input)
	if len(drafts) != 2 {
		t.Fatalf("Parse returned %d drafts, want 2", len(drafts))
	}
}
