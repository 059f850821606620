package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/corpus-planner/internal/domain"
)

// SustainabilityCSVFormatter exports the drawdown table of the selected strategy.
var SustainabilityCSVFormatter = FormatterFunc{ID: "sustainability-csv", F: formatSustainabilityCSV}

func formatSustainabilityCSV(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Strategy", "YearsIntoRetirement", "Age", "Corpus", "MonthlyIncome"}); err != nil {
		return nil, err
	}
	strategy := string(report.Income.Strategy)
	for _, p := range report.Income.Sustainability {
		row := []string{strategy, intToString(p.YearsIntoRetirement), intToString(p.Age), p.Corpus.StringFixed(2), p.MonthlyIncome.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
