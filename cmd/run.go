// -- cmd/run.go --
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fernweh-labs/consentgate/internal/consent"
	"github.com/fernweh-labs/consentgate/internal/observability"
	"github.com/fernweh-labs/consentgate/internal/reporting"
	"github.com/fernweh-labs/consentgate/internal/suite"
)

var runFlags struct {
	target       string
	environments []string
	scenarios    []string
	headless     bool
	output       string
	maxAttempts  int
	pollInterval time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the consent scenarios against the target site.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		applyRunFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		registry, err := consent.NewRegistry(cfg.Suite.Expectations)
		if err != nil {
			return fmt.Errorf("building expectation registry: %w", err)
		}

		runner, err := suite.NewRunner(cfg, registry, logger, suite.BrowserFactory(cfg.Browser, logger))
		if err != nil {
			return err
		}

		report, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}

		reporter, err := reporting.New(cfg.Report.Output)
		if err != nil {
			return err
		}
		defer reporter.Close()
		if err := reporter.Write(report); err != nil {
			return err
		}

		summary := report.Summarize()
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d scenario runs failed validation",
				summary.Failed, len(report.Results))
		}
		logger.Info("All consent scenarios passed.",
			zap.Int("passed", summary.Passed),
			zap.Int("skipped", summary.Skipped))
		return nil
	},
}

// applyRunFlags layers explicitly set command-line flags over the file/env
// config.
func applyRunFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("target") {
		cfg.Suite.TargetURL = runFlags.target
	}
	if cmd.Flags().Changed("env") {
		cfg.Suite.Environments = runFlags.environments
	}
	if cmd.Flags().Changed("scenario") {
		cfg.Suite.Scenarios = runFlags.scenarios
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = runFlags.headless
	}
	if cmd.Flags().Changed("output") {
		cfg.Report.Output = runFlags.output
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.Poll.MaxAttempts = runFlags.maxAttempts
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.Poll.Interval = runFlags.pollInterval
	}
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.target, "target", "t", "", "target URL carrying the consent banner")
	runCmd.Flags().StringSliceVarP(&runFlags.environments, "env", "e", nil, "environment profiles to run (default: all)")
	runCmd.Flags().StringSliceVarP(&runFlags.scenarios, "scenario", "s", nil, "scenarios to run (default: all)")
	runCmd.Flags().BoolVar(&runFlags.headless, "headless", true, "run the browser headless")
	runCmd.Flags().StringVarP(&runFlags.output, "output", "o", "", "report output path (default: stdout)")
	runCmd.Flags().IntVar(&runFlags.maxAttempts, "max-attempts", consent.DefaultMaxAttempts, "consent-commit polling attempts")
	runCmd.Flags().DurationVar(&runFlags.pollInterval, "poll-interval", consent.DefaultPollInterval, "wait between polling attempts")

	rootCmd.AddCommand(runCmd)
}
