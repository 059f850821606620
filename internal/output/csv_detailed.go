package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/corpus-planner/internal/domain"
)

// CSVDetailedExporter writes one row per projection year with every bucket.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"YearOffset", "CalendarYear", "Age"}
	for _, class := range domain.ProjectedClasses {
		header = append(header, string(class))
	}
	for _, class := range domain.ProjectedClasses {
		header = append(header, string(class)+"_rate")
	}
	header = append(header, "TotalInflow", "TotalOutflow", "NetCorpus")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range report.Projection {
		row := []string{intToString(r.YearOffset), intToString(r.CalendarYear), intToString(r.Age)}
		for _, class := range domain.ProjectedClasses {
			row = append(row, r.Balances[class].StringFixed(2))
		}
		for _, class := range domain.ProjectedClasses {
			row = append(row, r.Rates[class].StringFixed(2))
		}
		row = append(row, r.TotalInflow.StringFixed(2), r.TotalOutflow.StringFixed(2), r.NetCorpus.StringFixed(2))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
