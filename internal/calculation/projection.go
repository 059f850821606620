package calculation

import (
	"github.com/rpgo/corpus-planner/internal/config"
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Holdings is the plan's investments summed by asset class
type Holdings struct {
	Balances map[domain.AssetClass]decimal.Decimal
	Monthly  map[domain.AssetClass]decimal.Decimal
	Yearly   map[domain.AssetClass]decimal.Decimal
	// Excluded holds classes that are owned but never projected
	Excluded map[domain.AssetClass]decimal.Decimal
}

// AggregateHoldings sums investments by class
func AggregateHoldings(investments []domain.Investment) Holdings {
	h := Holdings{
		Balances: make(map[domain.AssetClass]decimal.Decimal),
		Monthly:  make(map[domain.AssetClass]decimal.Decimal),
		Yearly:   make(map[domain.AssetClass]decimal.Decimal),
		Excluded: make(map[domain.AssetClass]decimal.Decimal),
	}
	for _, c := range domain.ProjectedClasses {
		h.Balances[c] = decimal.Zero
		h.Monthly[c] = decimal.Zero
		h.Yearly[c] = decimal.Zero
	}

	for _, inv := range investments {
		if !inv.Class.InCorpus() {
			h.Excluded[inv.Class] = h.Excluded[inv.Class].Add(inv.CurrentValue)
			continue
		}
		h.Balances[inv.Class] = h.Balances[inv.Class].Add(inv.CurrentValue)
		h.Monthly[inv.Class] = h.Monthly[inv.Class].Add(inv.Monthly())
		h.Yearly[inv.Class] = h.Yearly[inv.Class].Add(inv.Yearly())
	}
	return h
}

// StartingCorpus is the sum of all projected balances today
func (h Holdings) StartingCorpus() decimal.Decimal {
	total := decimal.Zero
	for _, v := range h.Balances {
		total = total.Add(v)
	}
	return total
}

// MonthlyContribution is the sum of every recurring contribution, with yearly
// amounts spread over twelve months.
func (h Holdings) MonthlyContribution() decimal.Decimal {
	total := decimal.Zero
	for _, c := range domain.ProjectedClasses {
		total = total.Add(h.Monthly[c]).Add(h.Yearly[c].Div(twelve))
	}
	return total
}

// ProjectionEngine steps every bucket from today to retirement
type ProjectionEngine struct {
	Assumptions  domain.Assumptions
	DefaultRates map[domain.AssetClass]decimal.Decimal
	Logger       Logger
}

// NewProjectionEngine creates an engine for the resolved assumptions
func NewProjectionEngine(a domain.Assumptions, logger Logger) *ProjectionEngine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ProjectionEngine{
		Assumptions:  a,
		DefaultRates: config.DefaultRates(),
		Logger:       logger,
	}
}

// RateFor returns the rate a bucket earns in the given year offset, after
// the effective-from switch and the reduction policy.
func (pe *ProjectionEngine) RateFor(class domain.AssetClass, yearOffset int) decimal.Decimal {
	a := pe.Assumptions
	rate := pe.DefaultRates[class]
	if yearOffset >= a.EffectiveFromYear {
		if r, ok := a.Rates[class]; ok {
			rate = r
		}
	}

	rr := a.RateReduction
	if !rr.Enabled || !class.RateReduced() || rr.PeriodYears <= 0 {
		return rate
	}
	steps := yearOffset / rr.PeriodYears
	reduced := rate.Sub(rr.ReductionPercent.Mul(decimal.NewFromInt(int64(steps))))
	return decimal.Max(reduced, rr.FloorRate)
}

// Project produces yearsToRetirement+1 rows. Row 0 is the opening state;
// every later row is derived from the previous one only.
func (pe *ProjectionEngine) Project(h Holdings, events []domain.CashEvent, startYear int) []domain.ProjectionRow {
	a := pe.Assumptions
	years := a.YearsToRetirement()
	if years < 0 {
		years = 0
	}

	inflows, outflows := bucketEvents(events)
	rows := make([]domain.ProjectionRow, 0, years+1)

	balances := make(map[domain.AssetClass]decimal.Decimal, len(domain.ProjectedClasses))
	for _, c := range domain.ProjectedClasses {
		balances[c] = h.Balances[c]
	}
	sip := h.Monthly[domain.AssetMutualFund]
	rdSIP := h.Monthly[domain.AssetRD]
	stepUp := one.Add(a.SIPStepUp.Div(hundred))

	for k := 0; k <= years; k++ {
		rates := make(map[domain.AssetClass]decimal.Decimal, len(domain.ProjectedClasses))
		next := make(map[domain.AssetClass]decimal.Decimal, len(domain.ProjectedClasses))

		for _, c := range domain.ProjectedClasses {
			rate := pe.RateFor(c, k)
			rates[c] = rate
			if k == 0 {
				next[c] = balances[c]
				continue
			}
			grown := balances[c].Mul(one.Add(rate.Div(hundred)))
			next[c] = clampZero(grown.Add(pe.contribution(c, h, sip, rdSIP, rate, k)))
		}

		if k > 0 && k >= a.EffectiveFromYear {
			sip = sip.Mul(stepUp)
			rdSIP = rdSIP.Mul(stepUp)
		}

		calendarYear := startYear + k
		row := domain.ProjectionRow{
			YearOffset:   k,
			CalendarYear: calendarYear,
			Age:          a.CurrentAge + k,
			Balances:     next,
			Rates:        rates,
			TotalInflow:  inflows[calendarYear],
			TotalOutflow: outflows[calendarYear],
		}
		row.NetCorpus = clampZero(row.BucketTotal().Add(row.TotalInflow).Sub(row.TotalOutflow))
		rows = append(rows, row)
		balances = next

		pe.Logger.Debugf("projection: year %d (%d) corpus %s", k, calendarYear, row.NetCorpus.StringFixed(2))
	}

	return rows
}

// contribution is the amount a bucket receives at the end of year k
func (pe *ProjectionEngine) contribution(c domain.AssetClass, h Holdings, sip, rdSIP, rate decimal.Decimal, k int) decimal.Decimal {
	switch c {
	case domain.AssetPPF:
		return h.Yearly[c]
	case domain.AssetEPF, domain.AssetNPS:
		return h.Monthly[c].Mul(twelve)
	case domain.AssetMutualFund:
		amount := finmath.SIPFutureValue(sip, rate, one)
		if k >= pe.Assumptions.EffectiveFromYear {
			amount = amount.Add(pe.Assumptions.YearlyLumpsum)
		}
		return amount
	case domain.AssetRD:
		return finmath.SIPFutureValue(rdSIP, rate, one)
	default:
		return decimal.Zero
	}
}

// bucketEvents sums events per calendar year into inflow and outflow totals
func bucketEvents(events []domain.CashEvent) (map[int]decimal.Decimal, map[int]decimal.Decimal) {
	inflows := make(map[int]decimal.Decimal)
	outflows := make(map[int]decimal.Decimal)
	for _, e := range events {
		if e.Amount.IsNegative() {
			outflows[e.Year] = outflows[e.Year].Add(e.Amount.Neg())
		} else {
			inflows[e.Year] = inflows[e.Year].Add(e.Amount)
		}
	}
	return inflows, outflows
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
