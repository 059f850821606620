package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/corpus-planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary
	gap := report.GapAnalysis

	fmt.Fprintln(&buf, "RETIREMENT CORPUS SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Plan: %s\n", report.PlanName)
	fmt.Fprintf(&buf, "Corpus today: %s  Monthly contributions: %s\n", FormatCurrency(s.StartingCorpus), FormatCurrency(s.MonthlyContribution))
	fmt.Fprintf(&buf, "Corpus at retirement (age %d): %s  CAGR=%s\n", report.Assumptions.RetirementAge, FormatCurrency(s.FinalCorpus), FormatPercentage(s.CorpusCAGR))
	fmt.Fprintf(&buf, "Monthly income (%s): %s\n", s.Strategy, FormatCurrency(s.MonthlyIncome))
	fmt.Fprintf(&buf, "Required=%s Gap=%s (%s)\n", FormatCurrency(gap.RequiredCorpus), FormatCurrency(gap.Gap), FormatPercentage(gap.GapPercent))
	if gap.AdditionalMonthlySIP.IsPositive() {
		fmt.Fprintf(&buf, "Additional SIP needed: %s a month (surplus today %s)\n", FormatCurrency(gap.AdditionalMonthlySIP), FormatCurrency(gap.MonthlySurplus))
	}
	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintf(&buf, "Monte Carlo: P10=%s P50=%s P90=%s Success=%s\n",
			FormatCurrency(mc.Percentiles.P10), FormatCurrency(mc.Percentiles.P50), FormatCurrency(mc.Percentiles.P90), FormatRatio(mc.SuccessRate))
	}

	rec := AnalyzeStrategies(report.Income)
	if rec.Strategy != "" && rec.Strategy != report.Income.Strategy {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Highest income: %s (Δ %s / %s)\n", rec.Strategy, FormatCurrency(rec.IncomeChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
