package calculation

import (
	"fmt"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

var (
	safeWithdrawalRate = decimal.NewFromFloat(0.04)
	safeNetGrowth      = decimal.NewFromFloat(1.02) // 6% growth less the 4% drawn
	safeMultiple       = decimal.NewFromInt(25)
)

// IncomeStrategy pairs a drawdown rule with its inverse, so the income shown
// for a corpus and the corpus required for an expense always agree.
type IncomeStrategy interface {
	Name() domain.IncomeStrategy
	// MonthlyIncome is the income drawn from corpus with remainingYears left.
	// initialCorpus is the corpus on the day of retirement.
	MonthlyIncome(corpus, initialCorpus decimal.Decimal, remainingYears int) decimal.Decimal
	// NextCorpus evolves corpus by one year of drawdown.
	NextCorpus(corpus, initialCorpus decimal.Decimal, remainingYears int) decimal.Decimal
	// RequiredCorpus is the corpus needed to fund yearlyExpense for years.
	RequiredCorpus(yearlyExpense decimal.Decimal, years int) decimal.Decimal
}

// NewIncomeStrategy returns the strategy selected by the assumptions
func NewIncomeStrategy(a domain.Assumptions) (IncomeStrategy, error) {
	switch a.IncomeStrategy {
	case domain.StrategySimpleDepletion:
		return SimpleDepletion{InflationRate: a.InflationRate}, nil
	case domain.StrategySafe4Percent:
		return Safe4Percent{}, nil
	case domain.StrategySustainable:
		return Sustainable{ReturnRate: a.SustainableReturn, WithdrawalRate: a.WithdrawalRate}, nil
	default:
		return nil, fmt.Errorf("unknown income strategy %q", a.IncomeStrategy)
	}
}

// AllStrategies returns every strategy configured from the assumptions, in
// comparison order.
func AllStrategies(a domain.Assumptions) []IncomeStrategy {
	return []IncomeStrategy{
		SimpleDepletion{InflationRate: a.InflationRate},
		Safe4Percent{},
		Sustainable{ReturnRate: a.SustainableReturn, WithdrawalRate: a.WithdrawalRate},
	}
}

// SimpleDepletion spends the corpus down evenly with no growth
type SimpleDepletion struct {
	InflationRate decimal.Decimal
}

func (SimpleDepletion) Name() domain.IncomeStrategy { return domain.StrategySimpleDepletion }

func (SimpleDepletion) MonthlyIncome(corpus, _ decimal.Decimal, remainingYears int) decimal.Decimal {
	if remainingYears <= 0 {
		return decimal.Zero
	}
	return corpus.Div(decimal.NewFromInt(int64(remainingYears))).Div(twelve)
}

func (s SimpleDepletion) NextCorpus(corpus, initialCorpus decimal.Decimal, remainingYears int) decimal.Decimal {
	yearly := s.MonthlyIncome(corpus, initialCorpus, remainingYears).Mul(twelve)
	return clampZero(corpus.Sub(yearly))
}

// RequiredCorpus sums every year's inflated expense
func (s SimpleDepletion) RequiredCorpus(yearlyExpense decimal.Decimal, years int) decimal.Decimal {
	total := decimal.Zero
	for y := 0; y < years; y++ {
		total = total.Add(finmath.InflatedValue(yearlyExpense, s.InflationRate, decimal.NewFromInt(int64(y))))
	}
	return total
}

// Safe4Percent draws a fixed 4% of the retirement corpus every year
type Safe4Percent struct{}

func (Safe4Percent) Name() domain.IncomeStrategy { return domain.StrategySafe4Percent }

func (Safe4Percent) MonthlyIncome(_, initialCorpus decimal.Decimal, _ int) decimal.Decimal {
	return initialCorpus.Mul(safeWithdrawalRate).Div(twelve)
}

func (Safe4Percent) NextCorpus(corpus, _ decimal.Decimal, _ int) decimal.Decimal {
	return corpus.Mul(safeNetGrowth)
}

func (Safe4Percent) RequiredCorpus(yearlyExpense decimal.Decimal, _ int) decimal.Decimal {
	return yearlyExpense.Mul(safeMultiple)
}

// Sustainable draws a fixed share of whatever the corpus is worth while it
// keeps earning ReturnRate. Both rates are percents.
type Sustainable struct {
	ReturnRate     decimal.Decimal
	WithdrawalRate decimal.Decimal
}

func (Sustainable) Name() domain.IncomeStrategy { return domain.StrategySustainable }

func (s Sustainable) MonthlyIncome(corpus, _ decimal.Decimal, _ int) decimal.Decimal {
	return corpus.Mul(s.WithdrawalRate).Div(hundred).Div(twelve)
}

func (s Sustainable) NextCorpus(corpus, _ decimal.Decimal, _ int) decimal.Decimal {
	growth := corpus.Mul(s.ReturnRate).Div(hundred)
	drawn := corpus.Mul(s.WithdrawalRate).Div(hundred)
	return clampZero(corpus.Add(growth).Sub(drawn))
}

// RequiredCorpus inverts the withdrawal rate. A zero rate falls back to the
// 25x multiple of the 4% rule.
func (s Sustainable) RequiredCorpus(yearlyExpense decimal.Decimal, years int) decimal.Decimal {
	if !s.WithdrawalRate.IsPositive() {
		return Safe4Percent{}.RequiredCorpus(yearlyExpense, years)
	}
	return yearlyExpense.Div(s.WithdrawalRate.Div(hundred))
}
