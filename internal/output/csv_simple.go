package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/corpus-planner/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per report).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

// Header lists the summary columns.
func (c CSVSummarizer) Header() []string {
	return []string{"Plan", "RunID", "StartingCorpus", "MonthlyContribution", "FinalCorpus", "CorpusCAGR", "Strategy", "MonthlyIncome", "RequiredCorpus", "Gap", "GapPercent", "AdditionalMonthlySIP", "MonteCarloP50", "MonteCarloSuccessRate"}
}

// Row renders one report as a summary row.
func (c CSVSummarizer) Row(report *domain.PlanReport) []string {
	s := report.Summary
	g := report.GapAnalysis
	p50, success := "", ""
	if mc := report.MonteCarlo; mc != nil {
		p50 = mc.Percentiles.P50.StringFixed(2)
		success = mc.SuccessRate.StringFixed(4)
	}
	return []string{
		report.PlanName,
		report.RunID,
		s.StartingCorpus.StringFixed(2),
		s.MonthlyContribution.StringFixed(2),
		s.FinalCorpus.StringFixed(2),
		s.CorpusCAGR.StringFixed(2),
		string(s.Strategy),
		s.MonthlyIncome.StringFixed(2),
		g.RequiredCorpus.StringFixed(2),
		g.Gap.StringFixed(2),
		g.GapPercent.StringFixed(2),
		g.AdditionalMonthlySIP.StringFixed(2),
		p50,
		success,
	}
}

func (c CSVSummarizer) Format(report *domain.PlanReport) ([]byte, error) {
	return c.FormatAll([]*domain.PlanReport{report})
}

// FormatAll writes one summary row per report, in the given order.
func (c CSVSummarizer) FormatAll(reports []*domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(c.Header()); err != nil {
		return nil, err
	}
	for _, r := range reports {
		if err := w.Write(c.Row(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
