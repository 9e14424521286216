package parser

import (
	"regexp"
	"strings"
	"time"
)

// bankAParser handles statements whose records open with a full timestamp:
//
//	11/10/2025 00:41:43 Diğer Internet - Mobil INT ... -750,00 TL 0,00 TL
//
// A record may span several physical lines; continuation lines lack the
// leading timestamp and are space-joined onto the current record.
type bankAParser struct{}

var bankABoundary = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}\b`)

const bankADateLayout = "02/01/2006 15:04:05"

func (p *bankAParser) BankType() BankType {
	return BankTypeA
}

func (p *bankAParser) Parse(rawText string) []DraftRecord {
	records := reassemble(splitLines(rawText), bankABoundary.MatchString)

	drafts := make([]DraftRecord, 0, len(records))
	for _, line := range records {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		date, err := time.Parse(bankADateLayout, fields[0]+" "+fields[1])
		if err != nil {
			continue
		}

		amount, balance, cut, ok := trailingPair(currencyTokens(fields))
		if !ok || cut < 2 {
			continue
		}

		drafts = append(drafts, DraftRecord{
			Line:        line,
			Date:        date,
			Amount:      amount,
			Balance:     balance,
			Description: strings.Join(fields[2:cut], " "),
		})
	}

	return drafts
}
