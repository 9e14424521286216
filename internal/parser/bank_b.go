package parser

import (
	"regexp"
	"strings"
	"time"
)

// bankBParser handles statements with dot-separated dates and no time:
//
//	16.10.2025 K.Kartı Ödeme 5499 **** **** 0015 Kart Ödemesi -79,52 TL 0,00 TL
//
// One physical line is one record; there are no continuation lines.
type bankBParser struct{}

var bankBBoundary = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}\b`)

const bankBDateLayout = "02.01.2006"

func (p *bankBParser) BankType() BankType {
	return BankTypeB
}

func (p *bankBParser) Parse(rawText string) []DraftRecord {
	var drafts []DraftRecord
	for _, line := range splitLines(rawText) {
		line = strings.TrimSpace(line)
		if !bankBBoundary.MatchString(line) {
			continue
		}

		fields := strings.Fields(line)
		date, err := time.Parse(bankBDateLayout, fields[0])
		if err != nil {
			continue
		}

		amount, balance, cut, ok := trailingPair(currencyTokens(fields))
		if !ok || cut < 1 {
			continue
		}

		drafts = append(drafts, DraftRecord{
			Line:        line,
			Date:        date,
			Amount:      amount,
			Balance:     balance,
			Description: strings.Join(fields[1:cut], " "),
		})
	}

	return drafts
}
