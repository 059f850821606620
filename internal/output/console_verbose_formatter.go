package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/corpus-planner/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "RETIREMENT CORPUS PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Plan: %s   Run: %s   As of: %s\n", report.PlanName, report.RunID, report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report.Assumptions) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeStartingBalances(&buf, report.Summary)
	writeProjection(&buf, report.Projection)
	writeMaturities(&buf, report.MaturityEvents)
	writeIncome(&buf, report.Income)
	writeGap(&buf, report.GapAnalysis)
	if report.MonteCarlo != nil {
		writeMonteCarlo(&buf, report.MonteCarlo)
	}
	return buf.Bytes(), nil
}

func writeStartingBalances(buf *bytes.Buffer, s domain.PlanSummary) {
	fmt.Fprintln(buf, "STARTING BALANCES")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	for _, c := range domain.ProjectedClasses {
		if v := s.StartingBalances[c]; v.IsPositive() {
			fmt.Fprintf(buf, "  %-14s %20s\n", c, FormatCurrency(v))
		}
	}
	fmt.Fprintf(buf, "  %-14s %20s\n", "TOTAL", FormatCurrency(s.StartingCorpus))
	for _, c := range domain.ExcludedClasses {
		if v := s.ExcludedFromCorpus[c]; v.IsPositive() {
			fmt.Fprintf(buf, "  %-14s %20s (excluded)\n", c, FormatCurrency(v))
		}
	}
	fmt.Fprintf(buf, "Note: %s\n\n", s.ExclusionNote)
}

func writeProjection(buf *bytes.Buffer, rows []domain.ProjectionRow) {
	fmt.Fprintln(buf, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-6s %-4s %22s %18s %18s\n", "Year", "Age", "Corpus", "Inflow", "Outflow")
	for _, r := range rows {
		fmt.Fprintf(buf, "%-6d %-4d %22s %18s %18s\n", r.CalendarYear, r.Age,
			FormatCurrency(r.NetCorpus), FormatCurrency(r.TotalInflow), FormatCurrency(r.TotalOutflow))
	}
	fmt.Fprintln(buf)
}

func writeMaturities(buf *bytes.Buffer, events []domain.CashEvent) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintln(buf, "MATURITIES BEFORE RETIREMENT")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	for _, e := range events {
		fmt.Fprintf(buf, "  %d  %-24s %-18s %18s\n", e.Year, e.Name, e.Source, FormatCurrency(e.Amount))
	}
	fmt.Fprintln(buf)
}

func writeIncome(buf *bytes.Buffer, in domain.IncomeProjection) {
	fmt.Fprintln(buf, "RETIREMENT INCOME")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Strategy: %s over %d years\n", in.Strategy, in.RetirementYears)
	fmt.Fprintf(buf, "Monthly income: %s\n", FormatCurrency(in.MonthlyIncome))
	fmt.Fprintln(buf, "Comparison (first-year monthly income):")
	fmt.Fprintf(buf, "  simple depletion: %s\n", FormatCurrency(in.Comparison.SimpleDepletion))
	fmt.Fprintf(buf, "  4%% rule:          %s\n", FormatCurrency(in.Comparison.Safe4Percent))
	fmt.Fprintf(buf, "  sustainable:      %s\n", FormatCurrency(in.Comparison.Sustainable))
	fmt.Fprintln(buf, "Sustainability:")
	for _, p := range in.Sustainability {
		fmt.Fprintf(buf, "  +%2d yrs (age %d): corpus %s, income %s/month\n", p.YearsIntoRetirement, p.Age,
			FormatCurrency(p.Corpus), FormatCurrency(p.MonthlyIncome))
	}
	fmt.Fprintln(buf)
}

func writeGap(buf *bytes.Buffer, g domain.GapAnalysisResult) {
	fmt.Fprintln(buf, "GAP ANALYSIS")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Monthly income today:          %s\n", FormatCurrency(g.CurrentMonthlyIncome))
	fmt.Fprintf(buf, "Monthly expenses today:        %s\n", FormatCurrency(g.CurrentMonthlyExpenses))
	fmt.Fprintf(buf, "Monthly surplus:               %s\n", FormatCurrency(g.MonthlySurplus))
	fmt.Fprintf(buf, "Continuing premiums (monthly): %s\n", FormatCurrency(g.ContinuingMonthlyPremiums))
	fmt.Fprintf(buf, "Yearly expense at retirement:  %s\n", FormatCurrency(g.YearlyExpenseAtRetirement))
	fmt.Fprintf(buf, "Required for expenses:         %s\n", FormatCurrency(g.RequiredCorpusForExpenses))
	fmt.Fprintf(buf, "Goals:                         %s\n", FormatCurrency(g.TotalGoalsValue))
	fmt.Fprintf(buf, "Required corpus:               %s\n", FormatCurrency(g.RequiredCorpus))
	fmt.Fprintf(buf, "Projected corpus:              %s\n", FormatCurrency(g.ProjectedCorpus))
	fmt.Fprintf(buf, "Gap:                           %s (%s)\n", FormatCurrency(g.Gap), FormatPercentage(g.GapPercent))
	fmt.Fprintln(buf, "Suggestions:")
	for _, s := range g.Suggestions {
		fmt.Fprintf(buf, "  %d. %s\n", s.Priority, s.Message)
	}
	if len(g.ExpenseTable) > 0 {
		fmt.Fprintln(buf, "Projected expenses:")
		for _, e := range g.ExpenseTable {
			fmt.Fprintf(buf, "  %d (age %d): %s/month, %s/year\n", e.CalendarYear, e.Age, FormatCurrency(e.Monthly), FormatCurrency(e.Yearly))
		}
	}
	fmt.Fprintln(buf)
}

func writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloResult) {
	fmt.Fprintln(buf, "MONTE CARLO")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%d simulations over %d years (mean %s, std dev %s, seed %d)\n",
		mc.NumSimulations, mc.Years, FormatPercentage(mc.MeanReturn), FormatPercentage(mc.StdDev), mc.Seed)
	fmt.Fprintf(buf, "  P10: %s\n  P25: %s\n  P50: %s\n  P75: %s\n  P90: %s\n",
		FormatCurrency(mc.Percentiles.P10), FormatCurrency(mc.Percentiles.P25), FormatCurrency(mc.Percentiles.P50),
		FormatCurrency(mc.Percentiles.P75), FormatCurrency(mc.Percentiles.P90))
	fmt.Fprintf(buf, "  Mean: %s\n", FormatCurrency(mc.Mean))
	fmt.Fprintf(buf, "  Paths reaching %sx the starting corpus: %s\n", mc.TargetMultiple.String(), FormatRatio(mc.SuccessRate))
	fmt.Fprintln(buf)
}
