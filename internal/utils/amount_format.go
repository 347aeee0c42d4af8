package utils

import "github.com/shopspring/decimal"

// FormatUPIAmount renders an amount as the fixed two-decimal string UPI
// apps expect in the am= field.
// Example: 1250 -> "1250.00", 99.5 -> "99.50".
func FormatUPIAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
