package calculation

import (
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ContinuesAfterRetirement reports whether a policy's premium is still paid
// in retirement. An explicit override on the record always wins.
func ContinuesAfterRetirement(ins domain.Insurance) bool {
	if ins.ContinuesAfterRetirement != nil {
		return *ins.ContinuesAfterRetirement
	}
	switch ins.Type {
	case domain.InsuranceTermLife:
		return true
	case domain.InsuranceHealth:
		// employer cover ends with employment
		return ins.HealthSubType == domain.HealthPersonal || ins.HealthSubType == domain.HealthFamilyFloater
	default:
		return false
	}
}

// ContinuingPolicies filters the policies that carry on after retirement
func ContinuingPolicies(insurances []domain.Insurance) []domain.Insurance {
	var out []domain.Insurance
	for _, ins := range insurances {
		if ContinuesAfterRetirement(ins) {
			out = append(out, ins)
		}
	}
	return out
}

// MonthlyPremiums spreads the annual premiums of the given policies over twelve months
func MonthlyPremiums(insurances []domain.Insurance) decimal.Decimal {
	total := decimal.Zero
	for _, ins := range insurances {
		total = total.Add(ins.AnnualPremium)
	}
	return total.Div(twelve)
}
