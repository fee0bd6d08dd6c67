package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"digital.vasic.assertchain/pkg/config"
	"digital.vasic.assertchain/pkg/logging"
	"digital.vasic.assertchain/pkg/metrics"
	"digital.vasic.assertchain/pkg/report"
	"digital.vasic.assertchain/pkg/scenarios"
	"digital.vasic.assertchain/pkg/suite"
)

type runOptions struct {
	parallel       int
	cases          []string
	reportFormat   string
	reportPath     string
	includeFailing bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the cart scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(
				cmd.Context(), syscall.SIGINT, syscall.SIGTERM,
			)
			defer stop()

			return runScenarios(ctx, cmd, cfg, opts.includeFailing)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.parallel, "parallel", "p", 0, "number of cases to run at once")
	flags.StringSliceVar(&opts.cases, "case", nil, "run only the named cases (repeatable)")
	flags.StringVar(&opts.reportFormat, "format", "", "console report format: table or json")
	flags.StringVarP(&opts.reportPath, "output", "o", "", "also write a JSON report to this file")
	flags.BoolVar(&opts.includeFailing, "include-failing", false, "include cases that fail on purpose")

	return cmd
}

// applyFlags overrides config values with flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *runOptions) {
	flags := cmd.Flags()
	if flags.Changed("parallel") {
		cfg.Run.Parallelism = opts.parallel
	}
	if flags.Changed("case") {
		cfg.Run.Cases = opts.cases
	}
	if flags.Changed("format") {
		cfg.Report.Format = opts.reportFormat
	}
	if flags.Changed("output") {
		cfg.Report.Path = opts.reportPath
	}
}

func runScenarios(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	includeFailing bool,
) (err error) {
	logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cases := scenarios.All()
	if includeFailing {
		cases = append(cases, scenarios.Failing()...)
	}
	cases, err = suite.Select(cases, cfg.Run.Cases)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	runner := suite.NewRunner(
		suite.WithLogger(logger),
		suite.WithMetrics(collector),
		suite.WithParallelism(cfg.Run.Parallelism),
	)
	result, runErr := runner.Run(ctx, cases)
	if result == nil {
		return runErr
	}
	logger.Debug("run metrics",
		logging.IntField("passed", collector.CaseCount(suite.StatusPassed)),
		logging.IntField("failed", collector.CaseCount(suite.StatusFailed)),
		logging.IntField("errored", collector.CaseCount(suite.StatusError)),
		logging.IntField("peak_active", collector.PeakActiveCases()),
	)

	var console report.Reporter = report.NewTableReporter()
	if cfg.Report.Format == config.ReportJSON {
		console = report.NewJSONReporter(cfg.Report.Pretty)
	}
	if err := console.Write(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if runErr != nil {
		// cases that never started are listed as skipped
		return fmt.Errorf("run interrupted: %w", runErr)
	}

	if cfg.Report.Path != "" {
		if err := report.NewJSONReporter(cfg.Report.Pretty).
			WriteFile(cfg.Report.Path, result); err != nil {
			return err
		}
		logger.Info("report written",
			logging.StringField("path", cfg.Report.Path),
		)
	}

	if !result.AllPassed() {
		return errCasesFailed
	}
	return nil
}
