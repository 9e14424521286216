package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBankCParse(t *testing.T) {
	input := "2025-10-14-09.12.45.000123\t-1.250,00 TL\t8.403,17 TL\tPOS HARCAMA MİGROS"

	p := &bankCParser{}
	drafts := p.Parse(input)
	if len(drafts) != 1 {
		t.Fatalf("Parse returned %d drafts, want 1", len(drafts))
	}

	d := drafts[0]
	wantDate := time.Date(2025, 10, 14, 9, 12, 45, 123000, time.UTC)
	if !d.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", d.Date, wantDate)
	}
	if !d.Amount.Equal(decimal.RequireFromString("-1250")) {
		t.Errorf("Amount = %s, want -1250", d.Amount)
	}
	if !d.Balance.Equal(decimal.RequireFromString("8403.17")) {
		t.Errorf("Balance = %s, want 8403.17", d.Balance)
	}
	if d.Description != "POS HARCAMA MİGROS" {
		t.Errorf("Description = %q", d.Description)
	}
}

func TestBankCParseSkipsHeaderRows(t *testing.T) {
	input := "TARİH\tTUTAR\tBAKİYE\tAÇIKLAMA\n" +
		"2025-10-14-09.12.45.000123\t-1.250,00 TL\t8.403,17 TL\tPOS HARCAMA\n" +
		"Tarih\tTutar\tBakiye\tAçıklama\n" +
		"2025-10-15-11.30.00.000000\t2.000,00 TL\t10.403,17 TL\tHAVALE GELEN"

	p := &bankCParser{}
	drafts := p.Parse(input)
	if len(drafts) != 2 {
		t.Fatalf("Parse returned %d drafts, want 2", len(drafts))
	}
	for _, d := range drafts {
		if d.Description == "" {
			t.Errorf("draft %q has empty description", d.Line)
		}
	}
}

func TestBankCParseSpaceFlattenedColumns(t *testing.T) {
	// A paste through some terminals flattens tabs into runs of spaces.
	input := "2025-10-14-09.12.45.000123   -1.250,00 TL   8.403,17 TL   POS HARCAMA MİGROS"

	p := &bankCParser{}
	drafts := p.Parse(input)
	if len(drafts) != 1 {
		t.Fatalf("Parse returned %d drafts, want 1", len(drafts))
	}
	if drafts[0].Description != "POS HARCAMA MİGROS" {
		t.Errorf("Description = %q", drafts[0].Description)
	}
}

func TestBankCParseMultiColumnDescription(t *testing.T) {
	// Extra tab stops inside the description collapse into one field.
	input := "2025-10-14-09.12.45.000123\t-1.250,00 TL\t8.403,17 TL\tPOS HARCAMA\tMİGROS ATAŞEHİR"

	p := &bankCParser{}
	drafts := p.Parse(input)
	if len(drafts) != 1 {
		t.Fatalf("Parse returned %d drafts, want 1", len(drafts))
	}
	if drafts[0].Description != "POS HARCAMA MİGROS ATAŞEHİR" {
		t.Errorf("Description = %q", drafts[0].Description)
	}
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"tab separated", "a\tb\tc", 3},
		{"double space separated", "a  b   c", 3},
		{"empty columns dropped", "a\t\tb", 2},
		{"single spaces stay joined", "a b c", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitColumns(tt.input); len(got) != tt.want {
				t.Errorf("splitColumns(%q) = %v, want %d columns", tt.input, got, tt.want)
			}
		})
	}
}
