package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan document
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan checks the records of a plan. Scenario ages are checked by
// ResolveScenario so that a plan and a resolved scenario fail the same way.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if _, err := ResolveScenario(plan.Scenario); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}

	for i, inv := range plan.Investments {
		if err := ip.validateInvestment(&inv); err != nil {
			return fmt.Errorf("investment %d (%s): %w", i, inv.Name, err)
		}
	}

	for i, ins := range plan.Insurances {
		if err := ip.validateInsurance(&ins); err != nil {
			return fmt.Errorf("insurance %d (%s): %w", i, ins.Name, err)
		}
	}

	for i, goal := range plan.Goals {
		if goal.TargetAmount.IsNegative() {
			return fmt.Errorf("goal %d (%s): target amount cannot be negative", i, goal.Name)
		}
		if goal.TargetYear <= 0 {
			return fmt.Errorf("goal %d (%s): target year is required", i, goal.Name)
		}
	}

	for i, exp := range plan.Expenses {
		if exp.MonthlyAmount.IsNegative() {
			return fmt.Errorf("expense %d (%s): monthly amount cannot be negative", i, exp.Name)
		}
	}

	for i, inc := range plan.Incomes {
		if inc.MonthlyAmount.IsNegative() {
			return fmt.Errorf("income %d (%s): monthly amount cannot be negative", i, inc.Name)
		}
	}

	if mc := plan.MonteCarlo; mc != nil {
		if mc.Simulations <= 0 {
			return fmt.Errorf("monte_carlo: simulations must be positive")
		}
		if mc.StdDev != nil && mc.StdDev.IsNegative() {
			return fmt.Errorf("monte_carlo: std_dev cannot be negative")
		}
		if mc.Workers < 0 {
			return fmt.Errorf("monte_carlo: workers cannot be negative")
		}
	}

	return nil
}

func (ip *InputParser) validateInvestment(inv *domain.Investment) error {
	if !inv.Class.Valid() {
		return fmt.Errorf("unknown asset class %q", inv.Class)
	}
	if inv.CurrentValue.IsNegative() {
		return fmt.Errorf("current value cannot be negative")
	}
	if inv.InvestedAmount.IsNegative() {
		return fmt.Errorf("invested amount cannot be negative")
	}
	if inv.MonthlySIP != nil && inv.MonthlySIP.IsNegative() {
		return fmt.Errorf("monthly SIP cannot be negative")
	}
	if inv.YearlyContribution != nil && inv.YearlyContribution.IsNegative() {
		return fmt.Errorf("yearly contribution cannot be negative")
	}
	if inv.SIPDay != nil && (*inv.SIPDay < 1 || *inv.SIPDay > 31) {
		return fmt.Errorf("SIP day must be between 1 and 31")
	}
	return nil
}

func (ip *InputParser) validateInsurance(ins *domain.Insurance) error {
	switch ins.Type {
	case domain.InsuranceTermLife, domain.InsuranceHealth, domain.InsuranceULIP,
		domain.InsuranceEndowment, domain.InsuranceMoneyBack, domain.InsuranceVehicle, domain.InsuranceOther:
	default:
		return fmt.Errorf("unknown insurance type %q", ins.Type)
	}
	if ins.Type == domain.InsuranceHealth {
		switch ins.HealthSubType {
		case "", domain.HealthGroup, domain.HealthPersonal, domain.HealthFamilyFloater:
		default:
			return fmt.Errorf("unknown health sub-type %q", ins.HealthSubType)
		}
	}
	if ins.AnnualPremium.IsNegative() {
		return fmt.Errorf("annual premium cannot be negative")
	}
	return nil
}

// CreateExamplePlan creates an example plan for testing and the CLI
func (ip *InputParser) CreateExamplePlan(asOf time.Time) *domain.Plan {
	currentAge := 35
	retirementAge := 60
	lifeExpectancy := 85
	sipDay := 5
	strategy := domain.StrategySustainable

	d := decimal.NewFromInt
	ptr := func(v decimal.Decimal) *decimal.Decimal { return &v }
	fdMaturity := time.Date(asOf.Year()+3, time.March, 31, 0, 0, 0, 0, time.UTC)
	rdMaturity := time.Date(asOf.Year()+2, time.September, 30, 0, 0, 0, 0, time.UTC)
	endowmentMaturity := time.Date(asOf.Year()+12, time.June, 1, 0, 0, 0, 0, time.UTC)

	return &domain.Plan{
		Name: "Example household",
		Scenario: domain.ScenarioInput{
			CurrentAge:     &currentAge,
			RetirementAge:  &retirementAge,
			LifeExpectancy: &lifeExpectancy,
			IncomeStrategy: strategy,
		},
		Investments: []domain.Investment{
			{Name: "Provident fund", Class: domain.AssetPPF, CurrentValue: d(600000), InvestedAmount: d(450000), YearlyContribution: ptr(d(150000))},
			{Name: "Employer PF", Class: domain.AssetEPF, CurrentValue: d(900000), InvestedAmount: d(700000), MonthlySIP: ptr(d(12000))},
			{Name: "Index fund", Class: domain.AssetMutualFund, CurrentValue: d(1500000), InvestedAmount: d(1100000), MonthlySIP: ptr(d(25000)), SIPDay: &sipDay},
			{Name: "Pension scheme", Class: domain.AssetNPS, CurrentValue: d(300000), InvestedAmount: d(250000), MonthlySIP: ptr(d(4000))},
			{Name: "Bank FD", Class: domain.AssetFD, CurrentValue: d(500000), InvestedAmount: d(500000), ExpectedReturn: ptr(decimal.NewFromFloat(7.25)), MaturityDate: &fdMaturity},
			{Name: "Bank RD", Class: domain.AssetRD, CurrentValue: d(60000), InvestedAmount: d(60000), MonthlySIP: ptr(d(5000)), ExpectedReturn: ptr(decimal.NewFromFloat(6.8)), MaturityDate: &rdMaturity},
			{Name: "Savings", Class: domain.AssetCash, CurrentValue: d(200000), InvestedAmount: d(200000)},
			{Name: "Family gold", Class: domain.AssetGold, CurrentValue: d(400000), InvestedAmount: d(250000)},
		},
		Insurances: []domain.Insurance{
			{Name: "Term cover", Type: domain.InsuranceTermLife, AnnualPremium: d(18000), SumAssured: d(10000000)},
			{Name: "Employer health", Type: domain.InsuranceHealth, HealthSubType: domain.HealthGroup, AnnualPremium: d(0), SumAssured: d(500000)},
			{Name: "Family floater", Type: domain.InsuranceHealth, HealthSubType: domain.HealthFamilyFloater, AnnualPremium: d(24000), SumAssured: d(1000000)},
			{Name: "Endowment plan", Type: domain.InsuranceEndowment, AnnualPremium: d(30000), SumAssured: d(600000), MaturityDate: &endowmentMaturity},
		},
		Goals: []domain.Goal{
			{Name: "Child education", TargetAmount: d(2000000), TargetYear: asOf.Year() + 12},
			{Name: "Car replacement", TargetAmount: d(800000), TargetYear: asOf.Year() + 6},
		},
		Expenses: []domain.Expense{
			{Name: "Household", MonthlyAmount: d(45000)},
			{Name: "Rent", MonthlyAmount: d(25000)},
			{Name: "Travel and dining", MonthlyAmount: d(12000), Discretionary: true},
		},
		Incomes: []domain.Income{
			{Name: "Salary", MonthlyAmount: d(180000)},
		},
		MonteCarlo: &domain.MonteCarloSettings{
			Simulations: 1000,
			Seed:        42,
		},
	}
}
