package output

import (
	"fmt"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// GenerateAssumptions lists the resolved assumptions rendered in detailed outputs.
func GenerateAssumptions(a domain.Assumptions) []string {
	lines := []string{
		fmt.Sprintf("Age %d, retiring at %d, planning to age %d", a.CurrentAge, a.RetirementAge, a.LifeExpectancy),
		fmt.Sprintf("Inflation: %s annually", FormatPercentage(a.InflationRate)),
	}
	for _, c := range domain.ProjectedClasses {
		if rate, ok := a.Rates[c]; ok {
			lines = append(lines, fmt.Sprintf("%s return: %s annually", c, FormatPercentage(rate)))
		}
	}
	lines = append(lines,
		fmt.Sprintf("SIP step-up: %s a year from year %d", FormatPercentage(a.SIPStepUp), a.EffectiveFromYear),
		fmt.Sprintf("Yearly lumpsum into mutual funds: %s", FormatCurrency(a.YearlyLumpsum)),
		fmt.Sprintf("Income strategy: %s (sustainable return %s, withdrawal %s)", a.IncomeStrategy,
			FormatPercentage(a.SustainableReturn), FormatPercentage(a.WithdrawalRate)),
	)
	if rr := a.RateReduction; rr.Enabled {
		lines = append(lines, fmt.Sprintf("Administered and deposit rates fall %s every %d years, floor %s",
			FormatPercentage(rr.ReductionPercent), rr.PeriodYears, FormatPercentage(rr.FloorRate)))
	} else {
		lines = append(lines, "Administered and deposit rates held constant")
	}
	return lines
}
