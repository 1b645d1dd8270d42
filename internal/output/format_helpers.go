package output

import (
	"github.com/shopspring/decimal"

	money "github.com/rothcalc/conversion-calculator/pkg/decimal"
)

// FormatCurrency formats a decimal as USD currency with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a fractional rate (0.22) as a percentage (22.00%).
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
