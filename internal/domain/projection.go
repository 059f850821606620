package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEventKind tells inflows from maturities apart from goal outflows
type CashEventKind string

const (
	CashEventMaturity CashEventKind = "maturity"
	CashEventGoal     CashEventKind = "goal"
)

// CashEvent is a one-off amount landing in a calendar year. Positive amounts
// are inflows, negative amounts outflows.
type CashEvent struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source"`
	Kind   CashEventKind   `json:"kind"`
	Name   string          `json:"name"`
}

// ProjectionRow is the state of every bucket at the end of one projection year
type ProjectionRow struct {
	YearOffset   int                            `json:"year_offset"`
	CalendarYear int                            `json:"calendar_year"`
	Age          int                            `json:"age"`
	Balances     map[AssetClass]decimal.Decimal `json:"balances"`
	Rates        map[AssetClass]decimal.Decimal `json:"rates"`
	TotalInflow  decimal.Decimal                `json:"total_inflow"`
	TotalOutflow decimal.Decimal                `json:"total_outflow"`
	NetCorpus    decimal.Decimal                `json:"net_corpus"`
}

// BucketTotal sums the bucket balances of the row
func (r ProjectionRow) BucketTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range r.Balances {
		total = total.Add(v)
	}
	return total
}

// SustainabilityPoint samples the drawdown at one point of retirement
type SustainabilityPoint struct {
	YearsIntoRetirement int             `json:"years_into_retirement"`
	Age                 int             `json:"age"`
	Corpus              decimal.Decimal `json:"corpus"`
	MonthlyIncome       decimal.Decimal `json:"monthly_income"`
}

// StrategyComparison lists the first-year monthly income under every strategy
type StrategyComparison struct {
	SimpleDepletion decimal.Decimal `json:"simple_depletion"`
	Safe4Percent    decimal.Decimal `json:"safe_4_percent"`
	Sustainable     decimal.Decimal `json:"sustainable"`
}

// IncomeProjection is the post-retirement income picture for the selected strategy
type IncomeProjection struct {
	Strategy           IncomeStrategy        `json:"strategy"`
	CorpusAtRetirement decimal.Decimal       `json:"corpus_at_retirement"`
	RetirementYears    int                   `json:"retirement_years"`
	MonthlyIncome      decimal.Decimal       `json:"monthly_income"`
	Sustainability     []SustainabilityPoint `json:"sustainability"`
	Comparison         StrategyComparison    `json:"comparison"`
}

// Suggestion is one ranked remediation step
type Suggestion struct {
	Priority int             `json:"priority"`
	Type     string          `json:"type"`
	Message  string          `json:"message"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseProjection is the inflated monthly/yearly spend at a given year
type ExpenseProjection struct {
	YearOffset   int             `json:"year_offset"`
	CalendarYear int             `json:"calendar_year"`
	Age          int             `json:"age"`
	Monthly      decimal.Decimal `json:"monthly"`
	Yearly       decimal.Decimal `json:"yearly"`
}

// GoalShare is a goal's proportional slice of the shortfall
type GoalShare struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	ShareOfGap   decimal.Decimal `json:"share_of_gap"`
}

// GapAnalysisResult compares the projected corpus against what retirement needs
type GapAnalysisResult struct {
	RequiredCorpus            decimal.Decimal     `json:"required_corpus"`
	RequiredCorpusForExpenses decimal.Decimal     `json:"required_corpus_for_expenses"`
	TotalGoalsValue           decimal.Decimal     `json:"total_goals_value"`
	ProjectedCorpus           decimal.Decimal     `json:"projected_corpus"`
	Gap                       decimal.Decimal     `json:"gap"`
	GapPercent                decimal.Decimal     `json:"gap_percent"`
	AdditionalMonthlySIP      decimal.Decimal     `json:"additional_monthly_sip"`
	CurrentMonthlyExpenses    decimal.Decimal     `json:"current_monthly_expenses"`
	CurrentMonthlyIncome      decimal.Decimal     `json:"current_monthly_income"`
	MonthlySurplus            decimal.Decimal     `json:"monthly_surplus"`
	ContinuingMonthlyPremiums decimal.Decimal     `json:"continuing_monthly_premiums"`
	YearlyExpenseAtRetirement decimal.Decimal     `json:"yearly_expense_at_retirement"`
	Strategy                  IncomeStrategy      `json:"strategy"`
	Suggestions               []Suggestion        `json:"suggestions"`
	ExpenseTable              []ExpenseProjection `json:"expense_table"`
	GoalShares                []GoalShare         `json:"goal_shares,omitempty"`
}

// PercentileRanges represents percentile values of the simulated final corpus
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// MonteCarloResult summarizes the distribution of simulated outcomes
type MonteCarloResult struct {
	Percentiles         PercentileRanges `json:"percentiles"`
	Mean                decimal.Decimal  `json:"mean"`
	SuccessRate         decimal.Decimal  `json:"success_rate"`
	NumSimulations      int              `json:"num_simulations"`
	Years               int              `json:"years"`
	Seed                int64            `json:"seed"`
	StartingCorpus      decimal.Decimal  `json:"starting_corpus"`
	MonthlyContribution decimal.Decimal  `json:"monthly_contribution"`
	MeanReturn          decimal.Decimal  `json:"mean_return"`
	StdDev              decimal.Decimal  `json:"std_dev"`
	TargetMultiple      decimal.Decimal  `json:"target_multiple"`
}

// PlanSummary is the headline block of a report
type PlanSummary struct {
	FinalCorpus         decimal.Decimal                `json:"final_corpus"`
	MonthlyIncome       decimal.Decimal                `json:"monthly_income"`
	Strategy            IncomeStrategy                 `json:"strategy"`
	StartingBalances    map[AssetClass]decimal.Decimal `json:"starting_balances"`
	StartingCorpus      decimal.Decimal                `json:"starting_corpus"`
	MonthlyContribution decimal.Decimal                `json:"monthly_contribution"`
	ExcludedFromCorpus  map[AssetClass]decimal.Decimal `json:"excluded_from_corpus"`
	ExclusionNote       string                         `json:"exclusion_note"`
	CorpusCAGR          decimal.Decimal                `json:"corpus_cagr"`
}

// PlanReport is everything the presentation layer receives for one plan run
type PlanReport struct {
	RunID          string            `json:"run_id"`
	PlanName       string            `json:"plan_name"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Assumptions    Assumptions       `json:"assumptions"`
	Projection     []ProjectionRow   `json:"projection"`
	Summary        PlanSummary       `json:"summary"`
	Income         IncomeProjection  `json:"income"`
	GapAnalysis    GapAnalysisResult `json:"gap_analysis"`
	MaturityEvents []CashEvent       `json:"maturity_events"`
	MonteCarlo     *MonteCarloResult `json:"monte_carlo,omitempty"`
}

// FinalRow returns the last projection row
func (r *PlanReport) FinalRow() (ProjectionRow, bool) {
	if len(r.Projection) == 0 {
		return ProjectionRow{}, false
	}
	return r.Projection[len(r.Projection)-1], true
}
