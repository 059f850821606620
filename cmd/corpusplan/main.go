package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rpgo/corpus-planner/internal/calculation"
	"github.com/rpgo/corpus-planner/internal/config"
	"github.com/rpgo/corpus-planner/internal/domain"
	"github.com/rpgo/corpus-planner/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	format         string
	outputDir      string
	logLevel       string
	logJSON        bool
	seed           int64
	simulations    int
	skipMonteCarlo bool
	asOfFlag       string
)

var rootCmd = &cobra.Command{
	Use:   "corpusplan",
	Short: "Retirement corpus planner",
	Long: `Projects investment holdings to a retirement age, estimates the income
the resulting corpus can pay and reports the gap against projected expenses.`,
}

var runCmd = &cobra.Command{
	Use:     "run [plan files...]",
	Aliases: []string{"project"},
	Short:   "Project one or more plans and print the report",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := runPlans(cmd.Context(), args, false)
		if err != nil {
			return err
		}
		return emit(cmd, reports)
	},
}

var monteCarloCmd = &cobra.Command{
	Use:   "montecarlo [plan file]",
	Short: "Run the Monte Carlo simulation for a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := runPlans(cmd.Context(), args, true)
		if err != nil {
			return err
		}
		data, err := output.MonteCarloCSVFormatter{}.Format(reports[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output file]",
	Short: "Write an example plan file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "example_plan.yaml"
		if len(args) > 0 {
			filename = args[0]
		}
		asOf, err := parseAsOf()
		if err != nil {
			return err
		}
		if asOf.IsZero() {
			asOf = time.Now()
		}
		plan := config.NewInputParser().CreateExamplePlan(asOf)
		if err := output.SavePlan(plan, filename); err != nil {
			return fmt.Errorf("failed to write example plan: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", filename)
		return nil
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available report formats",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Formats:")
		for _, n := range output.AvailableFormatterNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", n)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Aliases:")
		for _, a := range output.AvailableFormatAliases() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s\n", a, output.NormalizeFormatName(a))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&asOfFlag, "as-of", "", "valuation date (YYYY-MM-DD), defaults to today")

	runCmd.Flags().StringVarP(&format, "format", "f", "console", "report format, or 'all' with --output-dir")
	runCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write report files to this directory instead of stdout")
	runCmd.Flags().BoolVar(&skipMonteCarlo, "skip-montecarlo", false, "skip the Monte Carlo run even when the plan configures one")

	for _, c := range []*cobra.Command{runCmd, monteCarloCmd} {
		c.Flags().Int64Var(&seed, "seed", 0, "override the Monte Carlo seed (0 keeps the plan's seed)")
	}
	monteCarloCmd.Flags().IntVarP(&simulations, "simulations", "n", 0, "override the number of simulations")

	rootCmd.AddCommand(runCmd, monteCarloCmd, exampleCmd, formatsCmd)
}

func newLogger() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if logJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

func parseAsOf() (time.Time, error) {
	if asOfFlag == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", asOfFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q: %w", asOfFlag, err)
	}
	return t, nil
}

// runPlans loads every plan file and runs them concurrently. forceMC makes
// sure a Monte Carlo section is produced even when the plan has none.
func runPlans(ctx context.Context, files []string, forceMC bool) ([]*domain.PlanReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	asOf, err := parseAsOf()
	if err != nil {
		return nil, err
	}

	parser := config.NewInputParser()
	plans := make([]*domain.Plan, 0, len(files))
	for _, f := range files {
		plan, err := parser.LoadFromFile(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		if plan.MonteCarlo == nil && forceMC {
			plan.MonteCarlo = &domain.MonteCarloSettings{Simulations: 1000}
		}
		if plan.MonteCarlo != nil {
			if seed != 0 {
				plan.MonteCarlo.Seed = seed
			}
			if simulations > 0 {
				plan.MonteCarlo.Simulations = simulations
			}
		}
		logger.WithField("file", f).Debugf("loaded plan %q", plan.Name)
		plans = append(plans, plan)
	}

	planner := calculation.NewPlanner()
	planner.SetLogger(logger)
	planner.SkipMonteCarlo = skipMonteCarlo && !forceMC
	return planner.RunAll(ctx, plans, asOf)
}

func emit(cmd *cobra.Command, reports []*domain.PlanReport) error {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for _, r := range reports {
			files, err := output.GenerateReport(r, format, outputDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
			}
		}
		return nil
	}

	f := output.GetFormatterByName(format)
	if f == nil {
		return output.UnsupportedFormatError(format)
	}
	if summarizer, ok := f.(output.CSVSummarizer); ok {
		data, err := summarizer.FormatAll(reports)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	for _, r := range reports {
		data, err := f.Format(r)
		if err != nil {
			return fmt.Errorf("plan %q: %w", r.PlanName, err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
