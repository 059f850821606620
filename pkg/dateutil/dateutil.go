package dateutil

import (
	"time"

	"github.com/shopspring/decimal"
)

const daysPerYear = 365.25

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / daysPerYear
}

// YearsUntilDecimal is YearsUntilDate rounded to 4 places for use in decimal math.
func YearsUntilDecimal(fromDate, toDate time.Time) decimal.Decimal {
	return decimal.NewFromFloat(YearsUntilDate(fromDate, toDate)).Round(4)
}

// StrictlyBetween reports whether t lies after start and before end.
func StrictlyBetween(t, start, end time.Time) bool {
	return t.After(start) && t.Before(end)
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// EndOfYear returns the last instant of the year for a given date
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 12, 31, 23, 59, 59, 999999999, date.Location())
}

// RetirementDate is the date a person of currentAge at asOf reaches retirementAge,
// pinned to the end of that calendar year.
func RetirementDate(asOf time.Time, currentAge, retirementAge int) time.Time {
	return EndOfYear(AddYears(asOf, retirementAge-currentAge))
}
