package accounts

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError is a user-facing input error. Mutating operations reject
// the request with one of these before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Turkish IBANs are exactly "TR" followed by 24 digits, 26 characters total.
var ibanPattern = regexp.MustCompile(`^TR\d{24}$`)

// NormalizeIBAN strips internal whitespace and validates the result against
// the TR IBAN shape. Any other shape is rejected with a ValidationError,
// never silently coerced.
func NormalizeIBAN(iban string) (string, error) {
	stripped := strings.Join(strings.Fields(iban), "")
	if !ibanPattern.MatchString(stripped) {
		return "", &ValidationError{
			Field:   "iban",
			Message: fmt.Sprintf("%q is not a valid TR IBAN (expected TR followed by 24 digits)", iban),
		}
	}
	return stripped, nil
}

// AccountNumberFromIBAN derives the short account number: the last 8
// characters of an already-validated IBAN.
func AccountNumberFromIBAN(iban string) string {
	if len(iban) < 8 {
		return ""
	}
	return iban[len(iban)-8:]
}
