package calculation

import (
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	sustainabilityInterval = 5
	sustainabilityHorizon  = 30
)

// RetirementIncomeCalculator turns the corpus at retirement into monthly income
type RetirementIncomeCalculator struct {
	Assumptions domain.Assumptions
	Logger      Logger
}

// NewRetirementIncomeCalculator creates a calculator for the resolved assumptions
func NewRetirementIncomeCalculator(a domain.Assumptions, logger Logger) *RetirementIncomeCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &RetirementIncomeCalculator{Assumptions: a, Logger: logger}
}

// Calculate projects income for the selected strategy and compares the
// first-year income of every strategy.
func (rc *RetirementIncomeCalculator) Calculate(corpus decimal.Decimal) (domain.IncomeProjection, error) {
	a := rc.Assumptions
	strategy, err := NewIncomeStrategy(a)
	if err != nil {
		return domain.IncomeProjection{}, err
	}

	years := a.RetirementYears()
	result := domain.IncomeProjection{
		Strategy:           strategy.Name(),
		CorpusAtRetirement: corpus,
		RetirementYears:    years,
		MonthlyIncome:      strategy.MonthlyIncome(corpus, corpus, years),
		Sustainability:     rc.Sustainability(strategy, corpus),
	}

	for _, s := range AllStrategies(a) {
		income := s.MonthlyIncome(corpus, corpus, years)
		switch s.Name() {
		case domain.StrategySimpleDepletion:
			result.Comparison.SimpleDepletion = income
		case domain.StrategySafe4Percent:
			result.Comparison.Safe4Percent = income
		case domain.StrategySustainable:
			result.Comparison.Sustainable = income
		}
	}

	rc.Logger.Debugf("income: %s strategy gives %s/month from %s", strategy.Name(), result.MonthlyIncome.StringFixed(2), corpus.StringFixed(2))
	return result, nil
}

// Sustainability samples the drawdown every five years up to thirty years
// or the end of the retirement horizon, whichever comes first.
func (rc *RetirementIncomeCalculator) Sustainability(strategy IncomeStrategy, corpus decimal.Decimal) []domain.SustainabilityPoint {
	a := rc.Assumptions
	years := a.RetirementYears()
	horizon := years
	if horizon > sustainabilityHorizon {
		horizon = sustainabilityHorizon
	}

	var points []domain.SustainabilityPoint
	current := corpus
	for y := 0; y <= horizon; y++ {
		remaining := years - y
		if y%sustainabilityInterval == 0 {
			points = append(points, domain.SustainabilityPoint{
				YearsIntoRetirement: y,
				Age:                 a.RetirementAge + y,
				Corpus:              current.Round(2),
				MonthlyIncome:       strategy.MonthlyIncome(current, corpus, remaining).Round(2),
			})
		}
		current = strategy.NextCorpus(current, corpus, remaining)
	}
	return points
}
