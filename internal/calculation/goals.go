package calculation

import (
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ScheduleGoals converts goals into inflation-adjusted outflows in their
// target year. Goals whose year has already passed are skipped.
func ScheduleGoals(goals []domain.Goal, inflationRate decimal.Decimal, currentYear int, logger Logger) []domain.CashEvent {
	if logger == nil {
		logger = NopLogger{}
	}

	events := make([]domain.CashEvent, 0, len(goals))
	for _, g := range goals {
		if g.TargetYear < currentYear {
			logger.Debugf("goals: skipping %q, target year %d already passed", g.Name, g.TargetYear)
			continue
		}
		years := decimal.NewFromInt(int64(g.TargetYear - currentYear))
		amount := finmath.InflatedValue(g.TargetAmount, inflationRate, years)
		events = append(events, domain.CashEvent{
			Year:   g.TargetYear,
			Amount: amount.Neg(),
			Source: "goal",
			Kind:   domain.CashEventGoal,
			Name:   g.Name,
		})
	}
	return events
}
