package output

import (
	"sort"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the strategy paying the highest first-year income.
type Recommendation struct {
	Strategy         domain.IncomeStrategy
	MonthlyIncome    decimal.Decimal
	IncomeChange     decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeStrategies ranks the compared strategies against the selected one.
func AnalyzeStrategies(income domain.IncomeProjection) Recommendation {
	type ranked struct {
		strategy domain.IncomeStrategy
		income   decimal.Decimal
	}
	ranks := []ranked{
		{domain.StrategySimpleDepletion, income.Comparison.SimpleDepletion},
		{domain.StrategySafe4Percent, income.Comparison.Safe4Percent},
		{domain.StrategySustainable, income.Comparison.Sustainable},
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].income.GreaterThan(ranks[j].income) })

	best := ranks[0]
	baseline := income.MonthlyIncome
	delta := best.income.Sub(baseline)
	pct := decimal.Zero
	if !baseline.IsZero() {
		pct = delta.Div(baseline).Mul(decimalHundred)
	}
	return Recommendation{Strategy: best.strategy, MonthlyIncome: best.income, IncomeChange: delta, PercentageChange: pct}
}
