package parser

import (
	"fmt"
)

// BankType identifies which bank's export format a pasted statement uses.
type BankType string

const (
	// BankTypeA: records open with "DD/MM/YYYY HH:MM:SS", amounts carry a
	// "TL" suffix, and a record may continue over several physical lines.
	BankTypeA BankType = "bank-a"
	// BankTypeB: records open with "DD.MM.YYYY", amounts carry a "TL"
	// suffix, one physical line per record.
	BankTypeB BankType = "bank-b"
	// BankTypeC: tab-delimited columns, first column is a
	// "YYYY-MM-DD-HH.MM.SS.microseconds" timestamp.
	BankTypeC BankType = "bank-c"
	// BankTypeD: records open with a sequence number and "DD/MM/YYYY",
	// amounts are bare comma decimals with no currency literal.
	BankTypeD BankType = "bank-d"
)

// Parser converts one pasted statement blob into draft transaction records.
// Parsing is pure and never fails: lines that do not match the bank's
// grammar are dropped, they never abort sibling records.
type Parser interface {
	// Parse takes raw pasted text and returns the draft records it could
	// extract, in the order they appear in the input.
	Parse(rawText string) []DraftRecord
	// BankType returns the grammar's format tag.
	BankType() BankType
}

// New returns the parser for the given bank format.
func New(bankType BankType) (Parser, error) {
	switch bankType {
	case BankTypeA:
		return &bankAParser{}, nil
	case BankTypeB:
		return &bankBParser{}, nil
	case BankTypeC:
		return &bankCParser{}, nil
	case BankTypeD:
		return &bankDParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bankType)
	}
}

// ParseBankType maps a user-supplied tag to a BankType.
func ParseBankType(s string) (BankType, error) {
	switch BankType(s) {
	case BankTypeA, BankTypeB, BankTypeC, BankTypeD:
		return BankType(s), nil
	default:
		return "", fmt.Errorf("unknown bank type %q (want bank-a, bank-b, bank-c or bank-d)", s)
	}
}
