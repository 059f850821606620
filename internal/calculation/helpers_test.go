package calculation

import (
	"testing"

	"github.com/rpgo/corpus-planner/internal/config"
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	x := decimal.NewFromFloat(v)
	return &x
}

func intPtr(v int) *int { return &v }

// resolved returns default assumptions for a saver of the given age
func resolved(t *testing.T, currentAge int, mutate func(*domain.ScenarioInput)) domain.Assumptions {
	t.Helper()
	in := domain.ScenarioInput{CurrentAge: &currentAge}
	if mutate != nil {
		mutate(&in)
	}
	a, err := config.ResolveScenario(in)
	require.NoError(t, err)
	return a
}

func assertClose(t *testing.T, want, got decimal.Decimal, tol float64, msgAndArgs ...any) {
	t.Helper()
	if got.Sub(want).Abs().GreaterThan(decimal.NewFromFloat(tol)) {
		t.Errorf("expected %s, got %s %v", want.String(), got.String(), msgAndArgs)
	}
}
