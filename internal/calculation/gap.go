package calculation

import (
	"fmt"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// additionalSIPReturn is the flat return assumed when sizing the extra SIP,
// independent of the scenario's equity rate.
var additionalSIPReturn = decimal.NewFromInt(10)

const (
	expenseCheckpointInterval = 5
	maxRetirementDelay        = 5
)

// GapInputs are the records the gap analysis reads besides the projection
type GapInputs struct {
	Expenses   []domain.Expense
	Insurances []domain.Insurance
	Goals      []domain.Goal
	Incomes    []domain.Income
}

// GapAnalyzer compares the projected corpus with the corpus retirement needs
type GapAnalyzer struct {
	Assumptions domain.Assumptions
	Logger      Logger
}

// NewGapAnalyzer creates an analyzer for the resolved assumptions
func NewGapAnalyzer(a domain.Assumptions, logger Logger) *GapAnalyzer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &GapAnalyzer{Assumptions: a, Logger: logger}
}

// Analyze computes the shortfall using the same strategy as the income calculation
func (ga *GapAnalyzer) Analyze(in GapInputs, projectedCorpus decimal.Decimal, startYear int) (domain.GapAnalysisResult, error) {
	a := ga.Assumptions
	strategy, err := NewIncomeStrategy(a)
	if err != nil {
		return domain.GapAnalysisResult{}, err
	}

	expenses := decimal.Zero
	discretionary := decimal.Zero
	for _, e := range in.Expenses {
		expenses = expenses.Add(e.MonthlyAmount)
		if e.Discretionary {
			discretionary = discretionary.Add(e.MonthlyAmount)
		}
	}
	income := decimal.Zero
	for _, inc := range in.Incomes {
		income = income.Add(inc.MonthlyAmount)
	}
	premiums := MonthlyPremiums(ContinuingPolicies(in.Insurances))
	monthly := expenses.Add(premiums)

	yearsToRetirement := a.YearsToRetirement()
	monthlyAtRetirement := finmath.InflatedValue(monthly, a.InflationRate, decimal.NewFromInt(int64(yearsToRetirement)))
	yearlyAtRetirement := monthlyAtRetirement.Mul(twelve)

	forExpenses := strategy.RequiredCorpus(yearlyAtRetirement, a.RetirementYears())
	goalsTotal := decimal.Zero
	for _, g := range in.Goals {
		goalsTotal = goalsTotal.Add(g.TargetAmount)
	}
	required := forExpenses.Add(goalsTotal)

	gap := decimal.Max(decimal.Zero, required.Sub(projectedCorpus))
	gapPercent := decimal.Zero
	if required.IsPositive() {
		gapPercent = gap.Div(required).Mul(hundred)
	}

	additionalSIP := decimal.Zero
	if gap.IsPositive() {
		additionalSIP = finmath.RequiredSIP(gap, additionalSIPReturn, decimal.NewFromInt(int64(yearsToRetirement)))
	}

	result := domain.GapAnalysisResult{
		RequiredCorpus:            required.Round(2),
		RequiredCorpusForExpenses: forExpenses.Round(2),
		TotalGoalsValue:           goalsTotal.Round(2),
		ProjectedCorpus:           projectedCorpus.Round(2),
		Gap:                       gap.Round(2),
		GapPercent:                gapPercent.Round(2),
		AdditionalMonthlySIP:      additionalSIP.Round(2),
		CurrentMonthlyExpenses:    expenses.Round(2),
		CurrentMonthlyIncome:      income.Round(2),
		MonthlySurplus:            income.Sub(expenses).Sub(MonthlyPremiums(in.Insurances)).Round(2),
		ContinuingMonthlyPremiums: premiums.Round(2),
		YearlyExpenseAtRetirement: yearlyAtRetirement.Round(2),
		Strategy:                  strategy.Name(),
		ExpenseTable:              ga.expenseTable(monthly, startYear),
		GoalShares:                goalShares(in.Goals, goalsTotal, gap),
	}
	result.Suggestions = ga.suggestions(gap, additionalSIP, expenses, discretionary, projectedCorpus, required)

	ga.Logger.Debugf("gap: required %s projected %s gap %s", required.StringFixed(2), projectedCorpus.StringFixed(2), gap.StringFixed(2))
	return result, nil
}

// expenseTable lists the inflated spend every five years and at retirement
func (ga *GapAnalyzer) expenseTable(monthly decimal.Decimal, startYear int) []domain.ExpenseProjection {
	a := ga.Assumptions
	years := a.YearsToRetirement()

	var table []domain.ExpenseProjection
	add := func(k int) {
		m := finmath.InflatedValue(monthly, a.InflationRate, decimal.NewFromInt(int64(k)))
		table = append(table, domain.ExpenseProjection{
			YearOffset:   k,
			CalendarYear: startYear + k,
			Age:          a.CurrentAge + k,
			Monthly:      m.Round(2),
			Yearly:       m.Mul(twelve).Round(2),
		})
	}
	for k := 0; k < years; k += expenseCheckpointInterval {
		add(k)
	}
	add(years)
	return table
}

// goalShares splits the gap across goals in proportion to their amounts
func goalShares(goals []domain.Goal, total, gap decimal.Decimal) []domain.GoalShare {
	if !total.IsPositive() {
		return nil
	}
	shares := make([]domain.GoalShare, 0, len(goals))
	for _, g := range goals {
		shares = append(shares, domain.GoalShare{
			Name:         g.Name,
			TargetAmount: g.TargetAmount,
			ShareOfGap:   gap.Mul(g.TargetAmount).Div(total).Round(2),
		})
	}
	return shares
}

func (ga *GapAnalyzer) suggestions(gap, additionalSIP, expenses, discretionary, projected, required decimal.Decimal) []domain.Suggestion {
	if !gap.IsPositive() {
		return []domain.Suggestion{{
			Priority: 1,
			Type:     "on_track",
			Message:  "Projected corpus covers the required corpus; keep the current plan",
		}}
	}

	cut := discretionary
	cutMessage := fmt.Sprintf("Cut discretionary spending of %s a month", cut.StringFixed(2))
	if !cut.IsPositive() {
		cut = expenses.Mul(decimal.NewFromFloat(0.1))
		cutMessage = fmt.Sprintf("Reduce monthly expenses by about 10%% (%s a month)", cut.StringFixed(2))
	}

	delay := ga.retirementDelay(projected, required)

	return []domain.Suggestion{
		{
			Priority: 1,
			Type:     "increase_sip",
			Message:  fmt.Sprintf("Invest an additional %s a month until retirement", additionalSIP.StringFixed(2)),
			Amount:   additionalSIP.Round(2),
		},
		{
			Priority: 2,
			Type:     "reduce_expenses",
			Message:  cutMessage,
			Amount:   cut.Round(2),
		},
		{
			Priority: 3,
			Type:     "delay_retirement",
			Message:  fmt.Sprintf("Delay retirement by %d year(s) to age %d", delay, ga.Assumptions.RetirementAge+delay),
			Amount:   decimal.NewFromInt(int64(delay)),
		},
		{
			Priority: 4,
			Type:     "rebalance_equity",
			Message:  "Shift part of the fixed-income holdings to equity funds for higher long-term growth",
		},
	}
}

// retirementDelay is the number of extra years, capped at five, for which
// the projected corpus growing at the flat SIP return reaches the target.
func (ga *GapAnalyzer) retirementDelay(projected, required decimal.Decimal) int {
	for n := 1; n < maxRetirementDelay; n++ {
		if finmath.FutureValue(projected, additionalSIPReturn, decimal.NewFromInt(int64(n))).GreaterThanOrEqual(required) {
			return n
		}
	}
	return maxRetirementDelay
}
