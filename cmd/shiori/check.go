package main

import (
	"github.com/spf13/cobra"

	"github.com/tabi-shiori/shiori/internal/check"
	"github.com/tabi-shiori/shiori/internal/config"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

type checkFlags struct {
	nonInteractive bool
	tripsDir       string
}

func newCheckCmd(global *globalOptions) *cobra.Command {
	opts := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check and initialize the local environment",
		Long: `Check the configuration file, the map API key, the trip data and the
Chrome binary used for PDF output.

Interactively, missing files are offered for creation from the built-in
examples:
  - ` + config.DefaultPath + `
  - ` + check.DefaultTripsDir + `/*.yaml

Exit codes: 2 when the configuration is invalid, 3 when a trip is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "only report, never prompt or create files")
	cmd.Flags().StringVar(&opts.tripsDir, "trips-dir", check.DefaultTripsDir, "directory that receives the example trips")
	return cmd
}

func runCheck(cmd *cobra.Command, global *globalOptions, opts *checkFlags) error {
	if err := loadEnv(global); err != nil {
		return err
	}

	checker := check.NewChecker(check.Options{
		ConfigPath: global.configPath,
		TripsDir:   opts.tripsDir,
		Out:        cmd.OutOrStdout(),
	})

	if !opts.nonInteractive {
		return checker.Run()
	}

	result := checker.RunNonInteractive()
	check.PrintCheckResult(cmd.OutOrStdout(), result)
	if err := result.Err(); err != nil {
		return err
	}
	if !result.Success {
		return errors.ErrValidation("environment check failed")
	}
	return nil
}
