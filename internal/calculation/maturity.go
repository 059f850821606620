package calculation

import (
	"sort"
	"time"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/pkg/dateutil"
	"github.com/rpgo/corpus-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// defaultMaturityReturn is used for maturing holdings without their own rate
var defaultMaturityReturn = decimal.NewFromInt(7)

// MaturityTracker turns holdings and policies with a maturity date into
// one-off inflow events.
type MaturityTracker struct {
	Rates  map[domain.AssetClass]decimal.Decimal
	Logger Logger
}

// NewMaturityTracker creates a tracker falling back to the scenario's class rates
func NewMaturityTracker(a domain.Assumptions, logger Logger) *MaturityTracker {
	if logger == nil {
		logger = NopLogger{}
	}
	return &MaturityTracker{Rates: a.Rates, Logger: logger}
}

// Events returns one inflow per record maturing strictly between asOf and
// horizon, sorted by year then name.
func (mt *MaturityTracker) Events(investments []domain.Investment, insurances []domain.Insurance, asOf, horizon time.Time) []domain.CashEvent {
	var events []domain.CashEvent

	for _, inv := range investments {
		if inv.MaturityDate == nil || !dateutil.StrictlyBetween(*inv.MaturityDate, asOf, horizon) {
			continue
		}
		years := dateutil.YearsUntilDecimal(asOf, *inv.MaturityDate)
		value := mt.MaturityValue(inv, years)
		mt.Logger.Debugf("maturity: %s (%s) matures %s at %s", inv.Name, inv.Class, inv.MaturityDate.Format("2006-01-02"), value.StringFixed(2))
		events = append(events, domain.CashEvent{
			Year:   inv.MaturityDate.Year(),
			Amount: value,
			Source: string(inv.Class) + "_maturity",
			Kind:   domain.CashEventMaturity,
			Name:   inv.Name,
		})
	}

	for _, ins := range insurances {
		if ins.MaturityDate == nil || !dateutil.StrictlyBetween(*ins.MaturityDate, asOf, horizon) {
			continue
		}
		var value decimal.Decimal
		switch ins.Type {
		case domain.InsuranceULIP:
			value = ins.FundValue
		case domain.InsuranceEndowment, domain.InsuranceMoneyBack:
			value = ins.SumAssured
		default:
			continue
		}
		if !value.IsPositive() {
			continue
		}
		events = append(events, domain.CashEvent{
			Year:   ins.MaturityDate.Year(),
			Amount: value,
			Source: string(ins.Type) + "_maturity",
			Kind:   domain.CashEventMaturity,
			Name:   ins.Name,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Year != events[j].Year {
			return events[i].Year < events[j].Year
		}
		return events[i].Name < events[j].Name
	})
	return events
}

// MaturityValue values a holding after the given number of years at its own rate
func (mt *MaturityTracker) MaturityValue(inv domain.Investment, years decimal.Decimal) decimal.Decimal {
	switch inv.Class {
	case domain.AssetFD:
		rate := inv.ReturnOr(mt.classRate(inv.Class))
		return finmath.FutureValue(inv.CurrentValue, rate, years)
	case domain.AssetRD:
		rate := inv.ReturnOr(mt.classRate(inv.Class))
		return finmath.FutureValue(inv.CurrentValue, rate, years).
			Add(finmath.SIPFutureValue(inv.Monthly(), rate, years))
	case domain.AssetPPF:
		rate := inv.ReturnOr(mt.classRate(inv.Class))
		monthly := inv.Yearly().Div(decimal.NewFromInt(12))
		return finmath.FutureValue(inv.CurrentValue, rate, years).
			Add(finmath.SIPFutureValue(monthly, rate, years))
	default:
		return finmath.FutureValue(inv.CurrentValue, inv.ReturnOr(defaultMaturityReturn), years)
	}
}

func (mt *MaturityTracker) classRate(c domain.AssetClass) decimal.Decimal {
	if rate, ok := mt.Rates[c]; ok {
		return rate
	}
	return defaultMaturityReturn
}
