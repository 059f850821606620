package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/rpgo/corpus-planner/internal/domain"
)

// MonteCarloCSVFormatter exports the simulation summary as Metric,Value,Description rows
type MonteCarloCSVFormatter struct{}

func (m MonteCarloCSVFormatter) Name() string { return "montecarlo-csv" }

func (m MonteCarloCSVFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	mc := report.MonteCarlo
	if mc == nil {
		return nil, errors.New("report has no Monte Carlo result")
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	summaryData := [][]string{
		{"Simulations", intToString(mc.NumSimulations), "Number of simulated return paths"},
		{"Years", intToString(mc.Years), "Years simulated until retirement"},
		{"Seed", fmt.Sprintf("%d", mc.Seed), "Seed used for the random paths"},
		{"Starting Corpus", mc.StartingCorpus.StringFixed(2), "Sum of all projected balances today"},
		{"Monthly Contribution", mc.MonthlyContribution.StringFixed(2), "Total monthly contributions"},
		{"Mean Return", mc.MeanReturn.StringFixed(2), "Mean annual return (percent)"},
		{"Std Dev", mc.StdDev.StringFixed(2), "Standard deviation of annual return (percent)"},
		{"P10", mc.Percentiles.P10.StringFixed(2), "10th percentile final corpus"},
		{"P25", mc.Percentiles.P25.StringFixed(2), "25th percentile final corpus"},
		{"P50", mc.Percentiles.P50.StringFixed(2), "Median final corpus"},
		{"P75", mc.Percentiles.P75.StringFixed(2), "75th percentile final corpus"},
		{"P90", mc.Percentiles.P90.StringFixed(2), "90th percentile final corpus"},
		{"Mean", mc.Mean.StringFixed(2), "Average final corpus"},
		{"Success Rate", FormatRatio(mc.SuccessRate), fmt.Sprintf("Paths ending at or above %sx the starting corpus", mc.TargetMultiple.String())},
	}
	for _, row := range summaryData {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
