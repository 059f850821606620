package config

import (
	"errors"
	"fmt"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidConfiguration is wrapped by every ConfigurationError
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigurationError reports an assumption set that cannot be projected
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// System defaults applied when a scenario leaves a field unset
const (
	DefaultRetirementAge     = 60
	DefaultLifeExpectancy    = 85
	DefaultEffectiveFromYear = 1
	DefaultReductionPeriod   = 5
)

var (
	DefaultInflationRate     = decimal.NewFromInt(6)
	DefaultSIPStepUp         = decimal.NewFromInt(10)
	DefaultSustainableReturn = decimal.NewFromInt(10)
	DefaultWithdrawalRate    = decimal.NewFromInt(8)
	DefaultReductionPercent  = decimal.NewFromFloat(0.5)
	DefaultFloorRate         = decimal.NewFromInt(4)
	DefaultIncomeStrategy    = domain.StrategySustainable
)

// DefaultRates returns the per-class rates used when a scenario does not set
// them, and for every year before the scenario's effective-from year.
func DefaultRates() map[domain.AssetClass]decimal.Decimal {
	return map[domain.AssetClass]decimal.Decimal{
		domain.AssetPPF:        decimal.NewFromFloat(7.1),
		domain.AssetEPF:        decimal.NewFromInt(10),
		domain.AssetNPS:        decimal.NewFromInt(10),
		domain.AssetMutualFund: decimal.NewFromInt(12),
		domain.AssetStock:      decimal.NewFromInt(12),
		domain.AssetFD:         decimal.NewFromInt(7),
		domain.AssetRD:         decimal.NewFromInt(7),
		domain.AssetCash:       decimal.NewFromInt(4),
	}
}

// ResolveScenario fills every unset field of in with its default and checks
// the resulting ages. The returned Assumptions share no state with in.
func ResolveScenario(in domain.ScenarioInput) (domain.Assumptions, error) {
	if in.CurrentAge == nil || *in.CurrentAge <= 0 {
		return domain.Assumptions{}, &ConfigurationError{Field: "current_age", Reason: "must be a positive age"}
	}

	a := domain.Assumptions{
		CurrentAge:        *in.CurrentAge,
		RetirementAge:     intOr(in.RetirementAge, DefaultRetirementAge),
		LifeExpectancy:    intOr(in.LifeExpectancy, DefaultLifeExpectancy),
		InflationRate:     decimalOr(in.InflationRate, DefaultInflationRate),
		SIPStepUp:         decimalOr(in.SIPStepUp, DefaultSIPStepUp),
		YearlyLumpsum:     decimalOr(in.YearlyLumpsum, decimal.Zero),
		EffectiveFromYear: intOr(in.EffectiveFromYear, DefaultEffectiveFromYear),
		IncomeStrategy:    in.IncomeStrategy,
		SustainableReturn: decimalOr(in.SustainableReturn, DefaultSustainableReturn),
		WithdrawalRate:    decimalOr(in.WithdrawalRate, DefaultWithdrawalRate),
		RateReduction: domain.RateReduction{
			Enabled:          true,
			ReductionPercent: DefaultReductionPercent,
			PeriodYears:      DefaultReductionPeriod,
			FloorRate:        DefaultFloorRate,
		},
	}

	a.Rates = DefaultRates()
	for class, rate := range in.Rates {
		if !class.Valid() {
			return domain.Assumptions{}, &ConfigurationError{Field: "rates", Reason: fmt.Sprintf("unknown asset class %q", class)}
		}
		a.Rates[class] = rate
	}

	if a.IncomeStrategy == "" {
		a.IncomeStrategy = DefaultIncomeStrategy
	}

	if rr := in.RateReduction; rr != nil {
		if rr.Enabled != nil {
			a.RateReduction.Enabled = *rr.Enabled
		}
		a.RateReduction.ReductionPercent = decimalOr(rr.ReductionPercent, DefaultReductionPercent)
		a.RateReduction.PeriodYears = intOr(rr.PeriodYears, DefaultReductionPeriod)
		a.RateReduction.FloorRate = decimalOr(rr.FloorRate, DefaultFloorRate)
	}

	if err := validateAssumptions(a); err != nil {
		return domain.Assumptions{}, err
	}
	return a, nil
}

func validateAssumptions(a domain.Assumptions) error {
	if a.RetirementAge <= a.CurrentAge {
		return &ConfigurationError{
			Field:  "retirement_age",
			Reason: fmt.Sprintf("retirement age %d must be greater than current age %d", a.RetirementAge, a.CurrentAge),
		}
	}
	if a.LifeExpectancy <= a.RetirementAge {
		return &ConfigurationError{
			Field:  "life_expectancy",
			Reason: fmt.Sprintf("life expectancy %d must be greater than retirement age %d", a.LifeExpectancy, a.RetirementAge),
		}
	}
	if !a.IncomeStrategy.Valid() {
		return &ConfigurationError{Field: "income_strategy", Reason: fmt.Sprintf("unknown strategy %q", a.IncomeStrategy)}
	}
	if a.EffectiveFromYear < 0 {
		return &ConfigurationError{Field: "effective_from_year", Reason: "cannot be negative"}
	}
	if a.RateReduction.Enabled && a.RateReduction.PeriodYears <= 0 {
		return &ConfigurationError{Field: "rate_reduction.period_years", Reason: "must be positive when rate reduction is enabled"}
	}
	if a.RateReduction.ReductionPercent.IsNegative() {
		return &ConfigurationError{Field: "rate_reduction.reduction_percent", Reason: "cannot be negative"}
	}
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func decimalOr(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}
