package calculation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"

	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSimulation is returned for simulation settings that cannot run
var ErrInvalidSimulation = errors.New("invalid simulation")

var (
	// DefaultStdDev is the spread of annual returns, in percent
	DefaultStdDev = decimal.NewFromFloat(8.0)
	// SuccessMultiple of the starting corpus a path must reach to count as a success
	SuccessMultiple = decimal.NewFromInt(2)

	two00 = decimal.NewFromInt(200)
)

const corpusPrecision = 8

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations      int
	Years               int
	Seed                int64 // 0 picks a fresh seed
	StartingCorpus      decimal.Decimal
	MonthlyContribution decimal.Decimal
	MeanReturn          decimal.Decimal // percent
	StdDev              decimal.Decimal // percent; zero means DefaultStdDev
	Workers             int             // zero means GOMAXPROCS
}

// MonteCarloSimulator samples independent return paths for the whole corpus
type MonteCarloSimulator struct {
	Logger Logger
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(logger Logger) *MonteCarloSimulator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &MonteCarloSimulator{Logger: logger}
}

// RunSimulation executes every path and summarizes the final corpus values.
// Each path draws from its own source seeded by (seed, path index), so the
// result does not depend on the number of workers.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, config MonteCarloConfig) (*domain.MonteCarloResult, error) {
	if config.NumSimulations <= 0 {
		return nil, fmt.Errorf("%w: number of simulations must be positive, got %d", ErrInvalidSimulation, config.NumSimulations)
	}
	if config.Years < 0 {
		return nil, fmt.Errorf("%w: years cannot be negative, got %d", ErrInvalidSimulation, config.Years)
	}
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.StdDev.IsZero() {
		config.StdDev = DefaultStdDev
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > config.NumSimulations {
		workers = config.NumSimulations
	}

	finals := make([]decimal.Decimal, config.NumSimulations)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		worker := w
		g.Go(func() error {
			for i := worker; i < config.NumSimulations; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				finals[i] = mcs.runPath(config, uint64(i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo aborted: %w", err)
	}

	mcs.Logger.Debugf("monte carlo: %d paths over %d years, seed %d, %d workers", config.NumSimulations, config.Years, config.Seed, workers)
	return summarize(finals, config), nil
}

// runPath simulates one path and returns its final corpus
func (mcs *MonteCarloSimulator) runPath(config MonteCarloConfig, path uint64) decimal.Decimal {
	rng := rand.New(rand.NewPCG(uint64(config.Seed), path))
	mean := config.MeanReturn.InexactFloat64()
	stdDev := config.StdDev.InexactFloat64()
	yearly := config.MonthlyContribution.Mul(twelve)

	corpus := config.StartingCorpus
	for year := 0; year < config.Years; year++ {
		r := decimal.NewFromFloat(mean + stdDev*rng.NormFloat64())
		growth := one.Add(r.Div(hundred))
		// contributions earn half the year's return
		contribution := yearly.Mul(one.Add(r.Div(two00)))
		corpus = clampZero(corpus.Mul(growth).Add(contribution)).Round(corpusPrecision)
	}
	return corpus
}

func summarize(finals []decimal.Decimal, config MonteCarloConfig) *domain.MonteCarloResult {
	sort.Slice(finals, func(i, j int) bool { return finals[i].LessThan(finals[j]) })

	n := len(finals)
	target := config.StartingCorpus.Mul(SuccessMultiple)
	total := decimal.Zero
	successes := 0
	for _, v := range finals {
		total = total.Add(v)
		if v.GreaterThanOrEqual(target) {
			successes++
		}
	}
	count := decimal.NewFromInt(int64(n))

	return &domain.MonteCarloResult{
		Percentiles: domain.PercentileRanges{
			P10: finals[n/10],
			P25: finals[n/4],
			P50: finals[n/2],
			P75: finals[3*n/4],
			P90: finals[9*n/10],
		},
		Mean:                total.Div(count),
		SuccessRate:         decimal.NewFromInt(int64(successes)).Div(count),
		NumSimulations:      n,
		Years:               config.Years,
		Seed:                config.Seed,
		StartingCorpus:      config.StartingCorpus,
		MonthlyContribution: config.MonthlyContribution,
		MeanReturn:          config.MeanReturn,
		StdDev:              config.StdDev,
		TargetMultiple:      SuccessMultiple,
	}
}
