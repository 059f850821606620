package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetClass identifies the kind of holding an investment record represents
type AssetClass string

const (
	AssetPPF        AssetClass = "ppf"         // statutory provident fund
	AssetEPF        AssetClass = "epf"         // employer provident fund
	AssetMutualFund AssetClass = "mutual_fund" // market-linked, SIP driven
	AssetNPS        AssetClass = "nps"         // pension scheme
	AssetFD         AssetClass = "fd"
	AssetRD         AssetClass = "rd"
	AssetStock      AssetClass = "stock"
	AssetCash       AssetClass = "cash"
	AssetRealEstate AssetClass = "real_estate"
	AssetGold       AssetClass = "gold"
	AssetCrypto     AssetClass = "crypto"
)

// ProjectedClasses are the buckets evolved by the projection, in display order.
var ProjectedClasses = []AssetClass{
	AssetPPF, AssetEPF, AssetNPS, AssetMutualFund, AssetStock, AssetFD, AssetRD, AssetCash,
}

// ExcludedClasses are held but never counted towards the retirement corpus.
var ExcludedClasses = []AssetClass{AssetRealEstate, AssetGold, AssetCrypto}

// Valid reports whether c is a known asset class
func (c AssetClass) Valid() bool {
	for _, known := range ProjectedClasses {
		if c == known {
			return true
		}
	}
	for _, known := range ExcludedClasses {
		if c == known {
			return true
		}
	}
	return false
}

// InCorpus reports whether balances of this class count towards the corpus
func (c AssetClass) InCorpus() bool {
	for _, excluded := range ExcludedClasses {
		if c == excluded {
			return false
		}
	}
	return true
}

// RateReduced reports whether the class follows administered or deposit
// rates, which decay under the rate-reduction policy.
func (c AssetClass) RateReduced() bool {
	switch c {
	case AssetPPF, AssetEPF, AssetFD, AssetRD:
		return true
	}
	return false
}

// Investment is one holding as loaded from the records layer
type Investment struct {
	Name               string           `yaml:"name" json:"name"`
	Class              AssetClass       `yaml:"class" json:"class"`
	CurrentValue       decimal.Decimal  `yaml:"current_value" json:"current_value"`
	InvestedAmount     decimal.Decimal  `yaml:"invested_amount" json:"invested_amount"`
	MonthlySIP         *decimal.Decimal `yaml:"monthly_sip,omitempty" json:"monthly_sip,omitempty"`
	SIPDay             *int             `yaml:"sip_day,omitempty" json:"sip_day,omitempty"`
	YearlyContribution *decimal.Decimal `yaml:"yearly_contribution,omitempty" json:"yearly_contribution,omitempty"`
	ExpectedReturn     *decimal.Decimal `yaml:"expected_return,omitempty" json:"expected_return,omitempty"` // percent; interest rate for deposits
	MaturityDate       *time.Time       `yaml:"maturity_date,omitempty" json:"maturity_date,omitempty"`
}

// Monthly returns the monthly contribution or zero
func (i Investment) Monthly() decimal.Decimal {
	if i.MonthlySIP == nil {
		return decimal.Zero
	}
	return *i.MonthlySIP
}

// Yearly returns the yearly contribution or zero
func (i Investment) Yearly() decimal.Decimal {
	if i.YearlyContribution == nil {
		return decimal.Zero
	}
	return *i.YearlyContribution
}

// ReturnOr returns the record's own rate, falling back to def
func (i Investment) ReturnOr(def decimal.Decimal) decimal.Decimal {
	if i.ExpectedReturn == nil {
		return def
	}
	return *i.ExpectedReturn
}

// InsuranceType classifies a policy
type InsuranceType string

const (
	InsuranceTermLife  InsuranceType = "term_life"
	InsuranceHealth    InsuranceType = "health"
	InsuranceULIP      InsuranceType = "ulip"
	InsuranceEndowment InsuranceType = "endowment"
	InsuranceMoneyBack InsuranceType = "money_back"
	InsuranceVehicle   InsuranceType = "vehicle"
	InsuranceOther     InsuranceType = "other"
)

// HealthSubType distinguishes employer cover from cover the person keeps
type HealthSubType string

const (
	HealthGroup         HealthSubType = "group"
	HealthPersonal      HealthSubType = "personal"
	HealthFamilyFloater HealthSubType = "family_floater"
)

// Insurance is a policy record
type Insurance struct {
	Name                     string          `yaml:"name" json:"name"`
	Type                     InsuranceType   `yaml:"type" json:"type"`
	HealthSubType            HealthSubType   `yaml:"health_sub_type,omitempty" json:"health_sub_type,omitempty"`
	AnnualPremium            decimal.Decimal `yaml:"annual_premium" json:"annual_premium"`
	PremiumFrequency         string          `yaml:"premium_frequency,omitempty" json:"premium_frequency,omitempty"`
	SumAssured               decimal.Decimal `yaml:"sum_assured" json:"sum_assured"`
	FundValue                decimal.Decimal `yaml:"fund_value" json:"fund_value"`
	MaturityDate             *time.Time      `yaml:"maturity_date,omitempty" json:"maturity_date,omitempty"`
	ContinuesAfterRetirement *bool           `yaml:"continues_after_retirement,omitempty" json:"continues_after_retirement,omitempty"`
}

// Goal is a future lump expense expressed in today's money
type Goal struct {
	Name         string          `yaml:"name" json:"name"`
	TargetAmount decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	TargetYear   int             `yaml:"target_year" json:"target_year"`
}

// Expense is a recurring monthly outgoing
type Expense struct {
	Name          string          `yaml:"name" json:"name"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
	Discretionary bool            `yaml:"discretionary,omitempty" json:"discretionary,omitempty"`
}

// Income is a recurring monthly inflow
type Income struct {
	Name          string          `yaml:"name" json:"name"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
}

// Plan bundles every record the engine needs for one person
type Plan struct {
	Name        string              `yaml:"name" json:"name"`
	Scenario    ScenarioInput       `yaml:"scenario" json:"scenario"`
	Investments []Investment        `yaml:"investments" json:"investments"`
	Insurances  []Insurance         `yaml:"insurances,omitempty" json:"insurances,omitempty"`
	Goals       []Goal              `yaml:"goals,omitempty" json:"goals,omitempty"`
	Expenses    []Expense           `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Incomes     []Income            `yaml:"incomes,omitempty" json:"incomes,omitempty"`
	MonteCarlo  *MonteCarloSettings `yaml:"monte_carlo,omitempty" json:"monte_carlo,omitempty"`
}

// MonteCarloSettings controls the optional stochastic run for a plan
type MonteCarloSettings struct {
	Simulations int              `yaml:"simulations" json:"simulations"`
	Seed        int64            `yaml:"seed,omitempty" json:"seed,omitempty"`
	MeanReturn  *decimal.Decimal `yaml:"mean_return,omitempty" json:"mean_return,omitempty"`
	StdDev      *decimal.Decimal `yaml:"std_dev,omitempty" json:"std_dev,omitempty"`
	Workers     int              `yaml:"workers,omitempty" json:"workers,omitempty"`
}
