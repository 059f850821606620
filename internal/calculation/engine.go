package calculation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/corpus-planner/internal/config"
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/pkg/dateutil"
	"github.com/rpgo/corpus-planner/pkg/finmath"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Planner orchestrates a full plan run
type Planner struct {
	MonteCarlo *MonteCarloSimulator
	// SkipMonteCarlo disables the stochastic run even when the plan asks for one
	SkipMonteCarlo bool
	Logger         Logger
}

// NewPlanner creates a planner with a no-op logger
func NewPlanner() *Planner {
	return &Planner{
		MonteCarlo: NewMonteCarloSimulator(NopLogger{}),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the planner. If nil is provided, a no-op logger is used.
func (p *Planner) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	p.Logger = l
	p.MonteCarlo.Logger = l
}

// Run projects a plan as of the given date. A zero asOf means now.
func (p *Planner) Run(ctx context.Context, plan *domain.Plan, asOf time.Time) (*domain.PlanReport, error) {
	if asOf.IsZero() {
		asOf = nowFunc()
	}

	a, err := config.ResolveScenario(plan.Scenario)
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", plan.Name, err)
	}
	p.Logger.Infof("running plan %q: age %d retiring at %d, strategy %s", plan.Name, a.CurrentAge, a.RetirementAge, a.IncomeStrategy)

	holdings := AggregateHoldings(plan.Investments)
	startYear := asOf.Year()
	retirement := dateutil.RetirementDate(asOf, a.CurrentAge, a.RetirementAge)

	maturities := NewMaturityTracker(a, p.Logger).Events(plan.Investments, plan.Insurances, asOf, retirement)
	goals := ScheduleGoals(plan.Goals, a.InflationRate, startYear, p.Logger)
	events := make([]domain.CashEvent, 0, len(maturities)+len(goals))
	events = append(events, maturities...)
	events = append(events, goals...)

	rows := NewProjectionEngine(a, p.Logger).Project(holdings, events, startYear)
	final := rows[len(rows)-1].NetCorpus

	income, err := NewRetirementIncomeCalculator(a, p.Logger).Calculate(final)
	if err != nil {
		return nil, fmt.Errorf("plan %q: income: %w", plan.Name, err)
	}

	gap, err := NewGapAnalyzer(a, p.Logger).Analyze(GapInputs{
		Expenses:   plan.Expenses,
		Insurances: plan.Insurances,
		Goals:      plan.Goals,
		Incomes:    plan.Incomes,
	}, final, startYear)
	if err != nil {
		return nil, fmt.Errorf("plan %q: gap analysis: %w", plan.Name, err)
	}

	report := &domain.PlanReport{
		RunID:          uuid.NewString(),
		PlanName:       plan.Name,
		GeneratedAt:    asOf,
		Assumptions:    a,
		Projection:     rows,
		Summary:        summarizePlan(a, holdings, final, income),
		Income:         income,
		GapAnalysis:    gap,
		MaturityEvents: maturities,
	}

	if plan.MonteCarlo != nil && !p.SkipMonteCarlo {
		mc, err := p.MonteCarlo.RunSimulation(ctx, monteCarloConfig(plan.MonteCarlo, a, holdings))
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", plan.Name, err)
		}
		report.MonteCarlo = mc
	}

	return report, nil
}

// RunAll runs independent plans concurrently. Reports keep the order of plans.
func (p *Planner) RunAll(ctx context.Context, plans []*domain.Plan, asOf time.Time) ([]*domain.PlanReport, error) {
	reports := make([]*domain.PlanReport, len(plans))
	g, ctx := errgroup.WithContext(ctx)
	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			report, err := p.Run(ctx, plan, asOf)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// monteCarloConfig derives simulation settings from the plan; the mean
// return defaults to the mutual-fund rate.
func monteCarloConfig(s *domain.MonteCarloSettings, a domain.Assumptions, h Holdings) MonteCarloConfig {
	cfg := MonteCarloConfig{
		NumSimulations:      s.Simulations,
		Years:               a.YearsToRetirement(),
		Seed:                s.Seed,
		StartingCorpus:      h.StartingCorpus(),
		MonthlyContribution: h.MonthlyContribution(),
		MeanReturn:          a.Rate(domain.AssetMutualFund),
		Workers:             s.Workers,
	}
	if s.MeanReturn != nil {
		cfg.MeanReturn = *s.MeanReturn
	}
	if s.StdDev != nil {
		cfg.StdDev = *s.StdDev
	}
	return cfg
}

func summarizePlan(a domain.Assumptions, h Holdings, final decimal.Decimal, income domain.IncomeProjection) domain.PlanSummary {
	start := h.StartingCorpus()
	summary := domain.PlanSummary{
		FinalCorpus:         final.Round(2),
		MonthlyIncome:       income.MonthlyIncome.Round(2),
		Strategy:            income.Strategy,
		StartingBalances:    h.Balances,
		StartingCorpus:      start,
		MonthlyContribution: h.MonthlyContribution().Round(2),
		ExcludedFromCorpus:  h.Excluded,
		CorpusCAGR:          finmath.CAGR(start, final, decimal.NewFromInt(int64(a.YearsToRetirement()))).Round(2),
	}

	names := make([]string, 0, len(domain.ExcludedClasses))
	for _, c := range domain.ExcludedClasses {
		names = append(names, strings.ReplaceAll(string(c), "_", " "))
	}
	summary.ExclusionNote = fmt.Sprintf("%s holdings are not counted towards the retirement corpus", strings.Join(names, ", "))
	return summary
}
