package parser

import (
	"regexp"
	"strings"
	"time"
)

// bankDParser handles numbered exports with no currency literal at all:
//
//	142 03/10/2025 HAVALE GELEN AHMET YILMAZ 2.500,00 14.903,17
//
// Records open with an integer sequence number followed by a date; lines
// without that prefix continue the current record. The trailing numeric
// pair is found by scanning backward from the line end for strict
// comma-decimal tokens: the first found is the balance, the next one the
// amount. Everything between the date and the amount is the description.
type bankDParser struct{}

var bankDBoundary = regexp.MustCompile(`^\d+ \d{2}/\d{2}/\d{4}\b`)

const bankDDateLayout = "02/01/2006"

// Unlike the TL-suffixed grammars, Bank-D decimals always carry the comma
// and two decimals; plain integers in the description never match.
var bankDDecimalPattern = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})*,\d{2}$`)

func (p *bankDParser) BankType() BankType {
	return BankTypeD
}

func (p *bankDParser) Parse(rawText string) []DraftRecord {
	records := reassemble(splitLines(rawText), bankDBoundary.MatchString)

	drafts := make([]DraftRecord, 0, len(records))
	for _, line := range records {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		date, err := time.Parse(bankDDateLayout, fields[1])
		if err != nil {
			continue
		}

		balanceIdx := -1
		amountIdx := -1
		for i := len(fields) - 1; i >= 2; i-- {
			if !bankDDecimalPattern.MatchString(fields[i]) {
				continue
			}
			if balanceIdx == -1 {
				balanceIdx = i
				continue
			}
			amountIdx = i
			break
		}
		if amountIdx < 2 {
			continue
		}

		amount, ok := parseTurkishAmount(fields[amountIdx])
		if !ok {
			continue
		}
		balance, ok := parseTurkishAmount(fields[balanceIdx])
		if !ok {
			continue
		}

		drafts = append(drafts, DraftRecord{
			Line:        line,
			Date:        date,
			Amount:      amount,
			Balance:     balance,
			Description: strings.Join(fields[2:amountIdx], " "),
		})
	}

	return drafts
}
