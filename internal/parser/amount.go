package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Turkish number grammar: optional sign, 1-3 digits, zero or more "."
// thousands groups of exactly 3 digits, optional "," and 2 decimals.
// Examples: "750", "-750,00", "1.234,56", "12.345.678,90".
var turkishAmountPattern = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})*(?:,\d{2})?$`)

// parseTurkishAmount converts a Turkish-formatted decimal token into its
// exact value. Tokens not matching the grammar are not numbers: the
// function reports ok=false and the caller treats it as "no number here".
func parseTurkishAmount(tok string) (decimal.Decimal, bool) {
	if !turkishAmountPattern.MatchString(tok) {
		return decimal.Zero, false
	}
	normalized := strings.ReplaceAll(tok, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// formatTurkishAmount renders a value back into the statement format with
// "." thousands separators and a "," decimal comma, always two decimals.
func formatTurkishAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// currencyLiteral is the suffix Bank-A/B/C print after every monetary token.
const currencyLiteral = "TL"

// moneyToken holds one parsed monetary token and its field position,
// so grammars can cut the description off where the numbers begin.
type moneyToken struct {
	value decimal.Decimal
	index int // position in the fields slice
}

// currencyTokens scans whitespace-separated fields for tokens immediately
// followed by the "TL" literal and returns them in order of appearance.
func currencyTokens(fields []string) []moneyToken {
	var tokens []moneyToken
	for i := 0; i+1 < len(fields); i++ {
		if fields[i+1] != currencyLiteral {
			continue
		}
		if v, ok := parseTurkishAmount(fields[i]); ok {
			tokens = append(tokens, moneyToken{value: v, index: i})
		}
	}
	return tokens
}

// trailingPair applies the shared Bank-A/B rule to the monetary tokens of
// one record: the last two are amount and balance, in that order. With a
// single token the record has no balance column and balance defaults to
// zero. cut is the field index where the trailing numbers begin, ok=false
// means the record carries no monetary token at all.
func trailingPair(tokens []moneyToken) (amount, balance decimal.Decimal, cut int, ok bool) {
	switch len(tokens) {
	case 0:
		return decimal.Zero, decimal.Zero, 0, false
	case 1:
		return tokens[0].value, decimal.Zero, tokens[0].index, true
	default:
		a := tokens[len(tokens)-2]
		b := tokens[len(tokens)-1]
		return a.value, b.value, a.index, true
	}
}

// stripCurrencySuffix removes a trailing "TL" literal (space before) from a
// column value, reporting whether it was present.
func stripCurrencySuffix(col string) (string, bool) {
	col = strings.TrimSpace(col)
	if !strings.HasSuffix(col, currencyLiteral) {
		return col, false
	}
	return strings.TrimSpace(strings.TrimSuffix(col, currencyLiteral)), true
}
