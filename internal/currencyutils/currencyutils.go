// Package currencyutils provides the decimal operations used for statement
// amounts.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// statementAmount matches amounts as printed on statements: digits with
// optional comma grouping and exactly two decimals, optionally signed.
var statementAmount = regexp.MustCompile(`^-?[\d,]+\.\d{2}$`)

// ParseAmount parses a statement amount such as "1,234.56" into a decimal.
// Commas are always thousands separators. Currency symbols and whitespace
// are ignored.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': empty", amountStr)
	}
	if !statementAmount.MatchString(standardized) {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': unexpected format", amountStr)
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(standardized, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount removes currency symbols and whitespace, keeping the
// digits, grouping commas, decimal point and sign.
func StandardizeAmount(amountStr string) string {
	var b strings.Builder
	for _, r := range amountStr {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FromFloat converts a stored floating point amount back to a cent-exact decimal.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// FormatAmount formats a decimal amount with two decimal places and an
// optional currency prefix, e.g. "$1234.56" or "CAD 1234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)

	switch strings.ToUpper(currency) {
	case "":
		return formattedAmount
	case "USD", "$":
		return "$" + formattedAmount
	case "EUR":
		return "€" + formattedAmount
	default:
		return strings.ToUpper(currency) + " " + formattedAmount
	}
}

// Sum adds up amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.IsNegative()
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.IsZero()
}
