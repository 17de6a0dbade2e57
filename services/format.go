package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency formats an amount as US dollars, e.g. "$1,234,567.89".
// Values within half a cent of zero display as exactly "$0.00", and a
// negative zero is coerced positive first so "-$0.00" can never appear.
func FormatCurrency(amount float64) string {
	if math.Abs(amount) < 0.005 {
		amount = 0
	}

	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatAccounting renders negatives in parentheses, the convention used in
// the variance column: -125.5 → "($125.50)".
func FormatAccounting(amount float64) string {
	formatted := FormatCurrency(amount)
	if strings.HasPrefix(formatted, "-") {
		return "(" + formatted[1:] + ")"
	}
	return formatted
}

// groupThousands inserts commas into an integer string in groups of three
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatQty formats a quantity: whole numbers without decimals, others
// with two.
func FormatQty(val float64) string {
	if val == math.Trunc(val) {
		return fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%.2f", val)
}
