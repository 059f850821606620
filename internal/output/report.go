package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/corpus-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the report in the named format to dir and returns
// the file written. "all" writes the verbose console text, projection CSV
// and JSON.
func GenerateReport(report *domain.PlanReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}} {
			name, err := WriteFormatted(f, report, dir, extensionFor(f))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	name, err := WriteFormatted(f, report, dir, extensionFor(f))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

func extensionFor(f Formatter) string {
	switch {
	case strings.Contains(f.Name(), "csv"):
		return "csv"
	case f.Name() == "json":
		return "json"
	default:
		return "txt"
	}
}

// SavePlan writes a plan as YAML so it can be loaded back by the input parser.
func SavePlan(plan *domain.Plan, filename string) error {
	b, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
