package parser

import (
	"regexp"
	"strings"
	"time"
)

// bankCParser handles tab-delimited exports whose first column is a
// DB2-style timestamp:
//
//	2025-10-14-09.12.45.000123	-1.250,00 TL	8.403,17 TL	POS HARCAMA MİGROS
//
// Column 2 is the amount, column 3 the running balance, both with a "TL"
// suffix; everything from column 4 on is the description. Header rows
// repeating the portal's column labels are skipped before grammar matching.
type bankCParser struct{}

var bankCBoundary = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{2}\.\d{2}\.\d{2}\.\d{6}`)

const bankCDateLayout = "2006-01-02-15.04.05.000000"

// Column labels as the portal prints them, used to drop header rows.
var bankCHeaderLabels = []string{
	"Tarih", "TARİH",
	"Tutar", "TUTAR",
	"Bakiye", "BAKİYE",
	"Açıklama", "AÇIKLAMA",
}

func (p *bankCParser) BankType() BankType {
	return BankTypeC
}

func (p *bankCParser) Parse(rawText string) []DraftRecord {
	var drafts []DraftRecord
	for _, line := range splitLines(rawText) {
		if strings.TrimSpace(line) == "" || isBankCHeader(line) {
			continue
		}
		if !bankCBoundary.MatchString(strings.TrimSpace(line)) {
			continue
		}

		cols := splitColumns(line)
		if len(cols) < 3 {
			continue
		}

		date, err := time.Parse(bankCDateLayout, cols[0])
		if err != nil {
			continue
		}

		amountTok, _ := stripCurrencySuffix(cols[1])
		amount, ok := parseTurkishAmount(amountTok)
		if !ok {
			continue
		}

		balanceTok, _ := stripCurrencySuffix(cols[2])
		balance, ok := parseTurkishAmount(balanceTok)
		if !ok {
			continue
		}

		drafts = append(drafts, DraftRecord{
			Line:        strings.TrimSpace(line),
			Date:        date,
			Amount:      amount,
			Balance:     balance,
			Description: strings.Join(cols[3:], " "),
		})
	}

	return drafts
}

func isBankCHeader(line string) bool {
	for _, label := range bankCHeaderLabels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}

var columnGapPattern = regexp.MustCompile(` {2,}`)

// splitColumns splits a statement row on tabs, falling back to runs of two
// or more spaces when the paste flattened the tab stops.
func splitColumns(line string) []string {
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = columnGapPattern.Split(line, -1)
	}

	cols := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}
