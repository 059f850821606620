package config

import (
	"errors"
	"testing"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestResolveScenario_Defaults(t *testing.T) {
	a, err := ResolveScenario(domain.ScenarioInput{CurrentAge: intPtr(30)})
	require.NoError(t, err)

	assert.Equal(t, 30, a.CurrentAge)
	assert.Equal(t, 60, a.RetirementAge)
	assert.Equal(t, 85, a.LifeExpectancy)
	assert.True(t, a.InflationRate.Equal(decimal.NewFromInt(6)))
	assert.True(t, a.SIPStepUp.Equal(decimal.NewFromInt(10)))
	assert.True(t, a.YearlyLumpsum.IsZero())
	assert.Equal(t, 1, a.EffectiveFromYear)
	assert.Equal(t, domain.StrategySustainable, a.IncomeStrategy)
	assert.True(t, a.SustainableReturn.Equal(decimal.NewFromInt(10)))
	assert.True(t, a.WithdrawalRate.Equal(decimal.NewFromInt(8)))

	assert.True(t, a.Rate(domain.AssetEPF).Equal(decimal.NewFromInt(10)))
	assert.True(t, a.Rate(domain.AssetPPF).Equal(decimal.NewFromFloat(7.1)))
	assert.True(t, a.Rate(domain.AssetMutualFund).Equal(decimal.NewFromInt(12)))
	for _, class := range domain.ProjectedClasses {
		_, ok := a.Rates[class]
		assert.True(t, ok, "missing default rate for %s", class)
	}

	assert.True(t, a.RateReduction.Enabled)
	assert.True(t, a.RateReduction.ReductionPercent.Equal(decimal.NewFromFloat(0.5)))
	assert.Equal(t, 5, a.RateReduction.PeriodYears)
	assert.True(t, a.RateReduction.FloorRate.Equal(decimal.NewFromInt(4)))

	assert.Equal(t, 30, a.YearsToRetirement())
	assert.Equal(t, 25, a.RetirementYears())
}

func TestResolveScenario_Overrides(t *testing.T) {
	disabled := false
	in := domain.ScenarioInput{
		CurrentAge:        intPtr(40),
		RetirementAge:     intPtr(55),
		LifeExpectancy:    intPtr(90),
		InflationRate:     decPtr(5),
		Rates:             map[domain.AssetClass]decimal.Decimal{domain.AssetMutualFund: decimal.NewFromInt(14)},
		EffectiveFromYear: intPtr(3),
		IncomeStrategy:    domain.StrategySafe4Percent,
		WithdrawalRate:    decPtr(6),
		RateReduction:     &domain.RateReductionInput{Enabled: &disabled},
	}

	a, err := ResolveScenario(in)
	require.NoError(t, err)

	assert.Equal(t, 55, a.RetirementAge)
	assert.Equal(t, 90, a.LifeExpectancy)
	assert.True(t, a.InflationRate.Equal(decimal.NewFromInt(5)))
	assert.True(t, a.Rate(domain.AssetMutualFund).Equal(decimal.NewFromInt(14)))
	assert.True(t, a.Rate(domain.AssetPPF).Equal(decimal.NewFromFloat(7.1)), "unset classes keep their default")
	assert.Equal(t, 3, a.EffectiveFromYear)
	assert.Equal(t, domain.StrategySafe4Percent, a.IncomeStrategy)
	assert.True(t, a.WithdrawalRate.Equal(decimal.NewFromInt(6)))
	assert.False(t, a.RateReduction.Enabled)
	assert.Equal(t, 5, a.RateReduction.PeriodYears)
}

func TestResolveScenario_DoesNotAliasInputRates(t *testing.T) {
	rates := map[domain.AssetClass]decimal.Decimal{domain.AssetFD: decimal.NewFromInt(8)}
	a, err := ResolveScenario(domain.ScenarioInput{CurrentAge: intPtr(30), Rates: rates})
	require.NoError(t, err)

	a.Rates[domain.AssetFD] = decimal.NewFromInt(1)
	assert.True(t, rates[domain.AssetFD].Equal(decimal.NewFromInt(8)))
}

func TestResolveScenario_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.ScenarioInput
		field string
	}{
		{"missing current age", domain.ScenarioInput{}, "current_age"},
		{"retirement equals current age", domain.ScenarioInput{CurrentAge: intPtr(60), RetirementAge: intPtr(60)}, "retirement_age"},
		{"retirement before current age", domain.ScenarioInput{CurrentAge: intPtr(62)}, "retirement_age"},
		{"life expectancy equals retirement", domain.ScenarioInput{CurrentAge: intPtr(30), LifeExpectancy: intPtr(60)}, "life_expectancy"},
		{"unknown strategy", domain.ScenarioInput{CurrentAge: intPtr(30), IncomeStrategy: "yolo"}, "income_strategy"},
		{"unknown rate class", domain.ScenarioInput{CurrentAge: intPtr(30), Rates: map[domain.AssetClass]decimal.Decimal{"bonds": decimal.NewFromInt(7)}}, "rates"},
		{"zero reduction period", domain.ScenarioInput{CurrentAge: intPtr(30), RateReduction: &domain.RateReductionInput{PeriodYears: intPtr(0)}}, "rate_reduction.period_years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveScenario(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
