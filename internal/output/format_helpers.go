package output

import (
	"strconv"

	"github.com/rpgo/corpus-planner/pkg/decimal"
	shopspring "github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with the rupee symbol and lakh grouping.
func FormatCurrency(amount shopspring.Decimal) string {
	return decimal.NewMoneyFromDecimal(amount).Round().Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount shopspring.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRatio formats a 0..1 fraction as a percentage.
func FormatRatio(ratio shopspring.Decimal) string {
	return FormatPercentage(ratio.Mul(decimalHundred))
}

func intToString(v int) string { return strconv.Itoa(v) }
