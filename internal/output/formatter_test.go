package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func buildTestReport() *domain.PlanReport {
	balances := func(mf, ppf float64) map[domain.AssetClass]decimal.Decimal {
		m := map[domain.AssetClass]decimal.Decimal{}
		for _, c := range domain.ProjectedClasses {
			m[c] = decimal.Zero
		}
		m[domain.AssetMutualFund] = dec(mf)
		m[domain.AssetPPF] = dec(ppf)
		return m
	}
	rates := map[domain.AssetClass]decimal.Decimal{domain.AssetMutualFund: dec(12), domain.AssetPPF: dec(7.1)}

	return &domain.PlanReport{
		RunID:       "run-1",
		PlanName:    "Test",
		GeneratedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Assumptions: domain.Assumptions{
			CurrentAge: 58, RetirementAge: 60, LifeExpectancy: 85,
			InflationRate: dec(6), Rates: rates, SIPStepUp: dec(10), EffectiveFromYear: 1,
			IncomeStrategy: domain.StrategySustainable, SustainableReturn: dec(10), WithdrawalRate: dec(8),
			RateReduction: domain.RateReduction{Enabled: true, ReductionPercent: dec(0.5), PeriodYears: 5, FloorRate: dec(4)},
		},
		Projection: []domain.ProjectionRow{
			{YearOffset: 0, CalendarYear: 2025, Age: 58, Balances: balances(100000, 50000), Rates: rates, NetCorpus: dec(150000)},
			{YearOffset: 1, CalendarYear: 2026, Age: 59, Balances: balances(124809.33, 53550), Rates: rates, TotalInflow: dec(10000), NetCorpus: dec(188359.33)},
			{YearOffset: 2, CalendarYear: 2027, Age: 60, Balances: balances(152595.78, 57352.05), Rates: rates, TotalOutflow: dec(20000), NetCorpus: dec(189947.83)},
		},
		Summary: domain.PlanSummary{
			FinalCorpus:         dec(189947.83),
			MonthlyIncome:       dec(1266.32),
			Strategy:            domain.StrategySustainable,
			StartingBalances:    balances(100000, 50000),
			StartingCorpus:      dec(150000),
			MonthlyContribution: dec(1000),
			ExcludedFromCorpus:  map[domain.AssetClass]decimal.Decimal{domain.AssetGold: dec(250000)},
			ExclusionNote:       "real estate, gold, crypto holdings are not counted towards the retirement corpus",
			CorpusCAGR:          dec(12.53),
		},
		Income: domain.IncomeProjection{
			Strategy:           domain.StrategySustainable,
			CorpusAtRetirement: dec(189947.83),
			RetirementYears:    25,
			MonthlyIncome:      dec(1266.32),
			Sustainability:     []domain.SustainabilityPoint{{YearsIntoRetirement: 0, Age: 60, Corpus: dec(189947.83), MonthlyIncome: dec(1266.32)}},
			Comparison:         domain.StrategyComparison{SimpleDepletion: dec(633.16), Safe4Percent: dec(633.16), Sustainable: dec(1266.32)},
		},
		GapAnalysis: domain.GapAnalysisResult{
			RequiredCorpus:       dec(15000000),
			ProjectedCorpus:      dec(189947.83),
			Gap:                  dec(14810052.17),
			GapPercent:           dec(98.73),
			AdditionalMonthlySIP: dec(560000),
			Strategy:             domain.StrategySustainable,
			CurrentMonthlyIncome: dec(150000),
			MonthlySurplus:       dec(40000),
			Suggestions:          []domain.Suggestion{{Priority: 1, Type: "increase_sip", Message: "Invest an additional 560000.00 a month until retirement"}},
		},
		MaturityEvents: []domain.CashEvent{{Year: 2026, Amount: dec(10000), Source: "fd_maturity", Kind: domain.CashEventMaturity, Name: "FD"}},
		MonteCarlo: &domain.MonteCarloResult{
			Percentiles:    domain.PercentileRanges{P10: dec(160000), P25: dec(170000), P50: dec(180000), P75: dec(190000), P90: dec(200000)},
			Mean:           dec(181000),
			SuccessRate:    dec(0.125),
			NumSimulations: 100,
			Years:          2,
			Seed:           7,
			TargetMultiple: dec(2),
		},
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"RETIREMENT CORPUS SUMMARY", "₹1,89,947.83", "Success=12.50%", "surplus today ₹40,000.00"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got: %s", want, content)
		}
	}
	if strings.Contains(content, "Highest income") {
		t.Fatalf("selected strategy already pays the most, got: %s", content)
	}
}

func TestConsoleLiteRecommendsHigherStrategy(t *testing.T) {
	report := buildTestReport()
	report.Income.Strategy = domain.StrategySafe4Percent
	report.Income.MonthlyIncome = dec(633.16)

	out, err := ConsoleFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "Highest income: sustainable") {
		t.Fatalf("expected sustainable recommendation, got: %s", out)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"RETIREMENT CORPUS PROJECTION",
		"KEY ASSUMPTIONS:",
		"YEAR-BY-YEAR PROJECTION",
		"MATURITIES BEFORE RETIREMENT",
		"GAP ANALYSIS",
		"MONTE CARLO",
		"(excluded)",
		"1. Invest an additional",
		"Monthly surplus:",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output", want)
		}
	}
}

func TestSustainabilityCSVFormatter(t *testing.T) {
	f := GetFormatterByName("income-csv")
	if f == nil || f.Name() != "sustainability-csv" {
		t.Fatalf("income-csv should resolve to sustainability-csv, got %v", f)
	}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(lines))
	}
	if lines[1] != "sustainable,0,60,189947.83,1266.32" {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestConsoleVerboseWithoutMonteCarlo(t *testing.T) {
	report := buildTestReport()
	report.MonteCarlo = nil
	out, err := ConsoleVerboseFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "MONTE CARLO") {
		t.Fatalf("Monte Carlo section should be omitted")
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "YearOffset,CalendarYear,Age,ppf,epf") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1,2026,59,53550.00") || !strings.HasSuffix(lines[2], "10000.00,0.00,188359.33") {
		t.Fatalf("unexpected row: %s", lines[2])
	}
}

func TestCSVSummarizer(t *testing.T) {
	report := buildTestReport()
	other := buildTestReport()
	other.PlanName = "Other"
	other.MonteCarlo = nil

	out, err := CSVSummarizer{}.FormatAll([]*domain.PlanReport{report, other})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header+2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Test,run-1,150000.00") || !strings.HasPrefix(lines[2], "Other,") {
		t.Fatalf("rows out of order: %v", lines)
	}
	if !strings.HasSuffix(lines[1], "180000.00,0.1250") || !strings.HasSuffix(lines[2], ",,") {
		t.Fatalf("unexpected Monte Carlo columns: %v", lines)
	}
}

func TestMonteCarloCSVFormatter(t *testing.T) {
	out, err := MonteCarloCSVFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "P50,180000.00,Median final corpus") {
		t.Fatalf("missing median row: %s", out)
	}

	report := buildTestReport()
	report.MonteCarlo = nil
	if _, err := (MonteCarloCSVFormatter{}).Format(report); err == nil {
		t.Fatalf("expected error without Monte Carlo result")
	}
}

func TestJSONFormatterFieldNames(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"run_id", "projection", "summary", "gap_analysis", "maturity_events", "monte_carlo", "income"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}
	summary := decoded["summary"].(map[string]any)
	if _, ok := summary["excluded_from_corpus"]; !ok {
		t.Fatalf("summary missing excluded_from_corpus")
	}
	rows := decoded["projection"].([]any)
	first := rows[0].(map[string]any)
	if _, ok := first["net_corpus"]; !ok {
		t.Fatalf("projection rows missing net_corpus")
	}
}

func TestFormatterAliasResolution(t *testing.T) {
	f := GetFormatterByName("console-verbose")
	if f == nil {
		t.Fatalf("alias console-verbose did not resolve to a formatter")
	}
	if f.Name() != "console" {
		t.Fatalf("alias resolved to %q, want 'console'", f.Name())
	}
	if GetFormatterByName(" JSON ") == nil {
		t.Fatalf("format names should be case and space insensitive")
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("pdf should not resolve")
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := map[float64]string{
		0:          "₹0.00",
		999.5:      "₹999.50",
		123456.789: "₹1,23,456.79",
		-12345678:  "-₹1,23,45,678.00",
	}
	for in, want := range tests {
		if got := FormatCurrency(dec(in)); got != want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatPercentage(dec(12.3456)); got != "12.35%" {
		t.Errorf("FormatPercentage = %q", got)
	}
	if got := FormatRatio(dec(0.875)); got != "87.50%" {
		t.Errorf("FormatRatio = %q", got)
	}
}

func TestAnalyzeStrategies(t *testing.T) {
	rec := AnalyzeStrategies(domain.IncomeProjection{
		Strategy:      domain.StrategySafe4Percent,
		MonthlyIncome: dec(1000),
		Comparison:    domain.StrategyComparison{SimpleDepletion: dec(1200), Safe4Percent: dec(1000), Sustainable: dec(1500)},
	})
	if rec.Strategy != domain.StrategySustainable {
		t.Fatalf("expected sustainable, got %s", rec.Strategy)
	}
	if !rec.IncomeChange.Equal(dec(500)) || !rec.PercentageChange.Equal(dec(50)) {
		t.Fatalf("unexpected delta %s / %s", rec.IncomeChange, rec.PercentageChange)
	}
}
