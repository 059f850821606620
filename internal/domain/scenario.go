package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeStrategy selects how post-retirement income is drawn from the corpus
type IncomeStrategy string

const (
	StrategySimpleDepletion IncomeStrategy = "simple_depletion"
	StrategySafe4Percent    IncomeStrategy = "safe_4_percent"
	StrategySustainable     IncomeStrategy = "sustainable"
)

// Valid reports whether s is one of the known strategies
func (s IncomeStrategy) Valid() bool {
	switch s {
	case StrategySimpleDepletion, StrategySafe4Percent, StrategySustainable:
		return true
	}
	return false
}

// RateReductionInput is the partially specified decay policy
type RateReductionInput struct {
	Enabled          *bool            `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	ReductionPercent *decimal.Decimal `yaml:"reduction_percent,omitempty" json:"reduction_percent,omitempty"`
	PeriodYears      *int             `yaml:"period_years,omitempty" json:"period_years,omitempty"`
	FloorRate        *decimal.Decimal `yaml:"floor_rate,omitempty" json:"floor_rate,omitempty"`
}

// ScenarioInput is an assumption set as supplied by the user; any nil field
// is filled with a default when resolved.
type ScenarioInput struct {
	CurrentAge        *int                           `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	RetirementAge     *int                           `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	LifeExpectancy    *int                           `yaml:"life_expectancy,omitempty" json:"life_expectancy,omitempty"`
	InflationRate     *decimal.Decimal               `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
	Rates             map[AssetClass]decimal.Decimal `yaml:"rates,omitempty" json:"rates,omitempty"`
	SIPStepUp         *decimal.Decimal               `yaml:"sip_step_up,omitempty" json:"sip_step_up,omitempty"`
	YearlyLumpsum     *decimal.Decimal               `yaml:"yearly_lumpsum,omitempty" json:"yearly_lumpsum,omitempty"`
	EffectiveFromYear *int                           `yaml:"effective_from_year,omitempty" json:"effective_from_year,omitempty"`
	IncomeStrategy    IncomeStrategy                 `yaml:"income_strategy,omitempty" json:"income_strategy,omitempty"`
	SustainableReturn *decimal.Decimal               `yaml:"sustainable_return,omitempty" json:"sustainable_return,omitempty"`
	WithdrawalRate    *decimal.Decimal               `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
	RateReduction     *RateReductionInput            `yaml:"rate_reduction,omitempty" json:"rate_reduction,omitempty"`
}

// RateReduction is the resolved decay policy for administered and deposit rates
type RateReduction struct {
	Enabled          bool            `json:"enabled"`
	ReductionPercent decimal.Decimal `json:"reduction_percent"`
	PeriodYears      int             `json:"period_years"`
	FloorRate        decimal.Decimal `json:"floor_rate"`
}

// Assumptions is a fully resolved, read-only scenario. Rates are percents.
type Assumptions struct {
	CurrentAge        int                            `json:"current_age"`
	RetirementAge     int                            `json:"retirement_age"`
	LifeExpectancy    int                            `json:"life_expectancy"`
	InflationRate     decimal.Decimal                `json:"inflation_rate"`
	Rates             map[AssetClass]decimal.Decimal `json:"rates"`
	SIPStepUp         decimal.Decimal                `json:"sip_step_up"`
	YearlyLumpsum     decimal.Decimal                `json:"yearly_lumpsum"`
	EffectiveFromYear int                            `json:"effective_from_year"`
	IncomeStrategy    IncomeStrategy                 `json:"income_strategy"`
	SustainableReturn decimal.Decimal                `json:"sustainable_return"`
	WithdrawalRate    decimal.Decimal                `json:"withdrawal_rate"`
	RateReduction     RateReduction                  `json:"rate_reduction"`
}

// YearsToRetirement is the number of growth years before retirement
func (a Assumptions) YearsToRetirement() int {
	return a.RetirementAge - a.CurrentAge
}

// RetirementYears is the length of the drawdown horizon
func (a Assumptions) RetirementYears() int {
	return a.LifeExpectancy - a.RetirementAge
}

// Rate returns the configured annual rate for an asset class
func (a Assumptions) Rate(c AssetClass) decimal.Decimal {
	return a.Rates[c]
}
