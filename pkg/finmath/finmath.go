// Package finmath holds the time-value-of-money primitives shared by the
// projection, gap and Monte Carlo code. All rates are annual percentages.
package finmath

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	monthly = decimal.NewFromInt(1200)
)

// Pow raises base to exp. Whole exponents are computed exactly; fractional
// exponents go through float64.
func Pow(base, exp decimal.Decimal) decimal.Decimal {
	if exp.IsZero() {
		return one
	}
	if exp.IsInteger() {
		return base.Pow(exp)
	}
	return decimal.NewFromFloat(math.Pow(base.InexactFloat64(), exp.InexactFloat64()))
}

// GrowthFactor returns (1 + rate/100)^years.
func GrowthFactor(annualRatePercent, years decimal.Decimal) decimal.Decimal {
	return Pow(one.Add(annualRatePercent.Div(hundred)), years)
}

// FutureValue compounds a lumpsum annually.
func FutureValue(principal, annualRatePercent, years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() {
		return principal
	}
	return principal.Mul(GrowthFactor(annualRatePercent, years))
}

// SIPFutureValue values a monthly contribution stream as an annuity-due.
func SIPFutureValue(monthlyAmount, annualRatePercent, years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() || !monthlyAmount.IsPositive() {
		return decimal.Zero
	}
	months := years.Mul(twelve)
	r := annualRatePercent.Div(monthly)
	if r.IsZero() {
		return monthlyAmount.Mul(months)
	}
	growth := Pow(one.Add(r), months)
	return monthlyAmount.Mul(growth.Sub(one)).Div(r).Mul(one.Add(r))
}

// RequiredSIP solves SIPFutureValue for the monthly payment that reaches target.
func RequiredSIP(targetAmount, annualRatePercent, years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() {
		return targetAmount
	}
	months := years.Mul(twelve)
	r := annualRatePercent.Div(monthly)
	if r.IsZero() {
		return targetAmount.Div(months)
	}
	growth := Pow(one.Add(r), months)
	denominator := growth.Sub(one).Div(r).Mul(one.Add(r))
	if denominator.IsZero() {
		return targetAmount
	}
	return targetAmount.Div(denominator)
}

// InflatedValue projects today's amount into future money.
func InflatedValue(amount, inflationRatePercent, years decimal.Decimal) decimal.Decimal {
	return FutureValue(amount, inflationRatePercent, years)
}

// CAGR returns the compound annual growth rate in percent.
func CAGR(initial, final, years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() || !initial.IsPositive() {
		return decimal.Zero
	}
	ratio := final.Div(initial)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	growth := math.Pow(ratio.InexactFloat64(), 1/years.InexactFloat64())
	return decimal.NewFromFloat(growth - 1).Mul(hundred)
}

// EMI is the fixed monthly payment that amortizes principal over months.
func EMI(principal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	r := annualRatePercent.Div(monthly)
	if r.IsZero() {
		return principal.Div(n)
	}
	growth := Pow(one.Add(r), n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one))
}

// AmortizationRow is one month of a loan schedule.
type AmortizationRow struct {
	Month          int             `json:"month"`
	EMI            decimal.Decimal `json:"emi"`
	Interest       decimal.Decimal `json:"interest"`
	Principal      decimal.Decimal `json:"principal"`
	Balance        decimal.Decimal `json:"balance"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
}

// AmortizationSchedule splits each EMI into interest and principal. It stops
// as soon as the balance is paid off.
func AmortizationSchedule(principal, monthlyRatePercent, emi decimal.Decimal, months int) []AmortizationRow {
	if months <= 0 {
		return []AmortizationRow{}
	}
	r := monthlyRatePercent.Div(hundred)
	balance := principal
	totalInterest := decimal.Zero
	totalPrincipal := decimal.Zero

	schedule := make([]AmortizationRow, 0, months)
	for month := 1; month <= months; month++ {
		interest := balance.Mul(r)
		principalPart := emi.Sub(interest)
		if principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		balance = balance.Sub(principalPart)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		totalInterest = totalInterest.Add(interest)
		totalPrincipal = totalPrincipal.Add(principalPart)

		schedule = append(schedule, AmortizationRow{
			Month:          month,
			EMI:            emi,
			Interest:       interest,
			Principal:      principalPart,
			Balance:        balance,
			TotalInterest:  totalInterest,
			TotalPrincipal: totalPrincipal,
		})

		if balance.IsZero() {
			break
		}
	}
	return schedule
}
