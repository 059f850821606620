package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const minimalPlan = `name: "Test plan"
scenario:
  current_age: 35
  retirement_age: 58
  inflation_rate: 5.5
  rates:
    mutual_fund: 13
  income_strategy: safe_4_percent
investments:
  - name: "Index fund"
    class: mutual_fund
    current_value: 250000.50
    invested_amount: 200000
    monthly_sip: 10000
    sip_day: 7
  - name: "Bank FD"
    class: fd
    current_value: 100000
    invested_amount: 100000
    expected_return: 7.25
    maturity_date: 2030-03-31
goals:
  - name: "House"
    target_amount: 1500000
    target_year: 2032
expenses:
  - name: "Living"
    monthly_amount: 40000
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalPlan), 0o600))

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Test plan", plan.Name)
	require.NotNil(t, plan.Scenario.CurrentAge)
	assert.Equal(t, 35, *plan.Scenario.CurrentAge)
	require.NotNil(t, plan.Scenario.InflationRate)
	assert.True(t, plan.Scenario.InflationRate.Equal(decimal.NewFromFloat(5.5)))
	assert.True(t, plan.Scenario.Rates[domain.AssetMutualFund].Equal(decimal.NewFromInt(13)))
	assert.Equal(t, domain.StrategySafe4Percent, plan.Scenario.IncomeStrategy)

	require.Len(t, plan.Investments, 2)
	fund := plan.Investments[0]
	assert.Equal(t, domain.AssetMutualFund, fund.Class)
	assert.True(t, fund.CurrentValue.Equal(decimal.RequireFromString("250000.50")))
	assert.True(t, fund.Monthly().Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, fund.SIPDay)
	assert.Equal(t, 7, *fund.SIPDay)

	fd := plan.Investments[1]
	require.NotNil(t, fd.MaturityDate)
	assert.Equal(t, 2030, fd.MaturityDate.Year())
	assert.Equal(t, time.March, fd.MaturityDate.Month())
	assert.True(t, fd.ReturnOr(decimal.Zero).Equal(decimal.NewFromFloat(7.25)))

	require.Len(t, plan.Goals, 1)
	assert.Equal(t, 2032, plan.Goals[0].TargetYear)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("scenario: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_ScenarioErrorIsConfigurationError(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("scenario:\n  current_age: 65\n  retirement_age: 60\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestValidatePlan(t *testing.T) {
	age := 30
	base := func() *domain.Plan {
		return &domain.Plan{
			Scenario: domain.ScenarioInput{CurrentAge: &age},
			Investments: []domain.Investment{
				{Name: "fund", Class: domain.AssetMutualFund, CurrentValue: decimal.NewFromInt(1000)},
			},
		}
	}
	negative := decimal.NewFromInt(-1)
	badDay := 32

	tests := []struct {
		name    string
		mutate  func(p *domain.Plan)
		wantErr string
	}{
		{"valid", func(p *domain.Plan) {}, ""},
		{"unknown class", func(p *domain.Plan) { p.Investments[0].Class = "bonds" }, "unknown asset class"},
		{"negative value", func(p *domain.Plan) { p.Investments[0].CurrentValue = negative }, "current value cannot be negative"},
		{"negative sip", func(p *domain.Plan) { p.Investments[0].MonthlySIP = &negative }, "monthly SIP cannot be negative"},
		{"bad sip day", func(p *domain.Plan) { p.Investments[0].SIPDay = &badDay }, "SIP day"},
		{"unknown insurance", func(p *domain.Plan) {
			p.Insurances = []domain.Insurance{{Name: "x", Type: "pet"}}
		}, "unknown insurance type"},
		{"unknown health sub-type", func(p *domain.Plan) {
			p.Insurances = []domain.Insurance{{Name: "x", Type: domain.InsuranceHealth, HealthSubType: "corporate"}}
		}, "unknown health sub-type"},
		{"goal without year", func(p *domain.Plan) {
			p.Goals = []domain.Goal{{Name: "trip", TargetAmount: decimal.NewFromInt(10)}}
		}, "target year is required"},
		{"negative expense", func(p *domain.Plan) {
			p.Expenses = []domain.Expense{{Name: "rent", MonthlyAmount: negative}}
		}, "monthly amount cannot be negative"},
		{"zero simulations", func(p *domain.Plan) {
			p.MonteCarlo = &domain.MonteCarloSettings{}
		}, "simulations must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := base()
			tt.mutate(plan)
			err := NewInputParser().ValidatePlan(plan)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateExamplePlan_RoundTripsThroughYAML(t *testing.T) {
	asOf := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	parser := NewInputParser()
	example := parser.CreateExamplePlan(asOf)
	require.NoError(t, parser.ValidatePlan(example))

	data, err := yaml.Marshal(example)
	require.NoError(t, err)

	plan, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, example.Name, plan.Name)
	assert.Len(t, plan.Investments, len(example.Investments))
	assert.Len(t, plan.Insurances, len(example.Insurances))
	require.NotNil(t, plan.MonteCarlo)
	assert.Equal(t, int64(42), plan.MonteCarlo.Seed)
}
