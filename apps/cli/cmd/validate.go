package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
	"github.com/abdul-hamid-achik/hitassert/packages/core/suite"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Validate suite files and assertion configuration",
	Long: `Validate suite files without evaluating any check. Suites are parsed,
fixtures loaded and rules compiled, then every assertion configuration is
checked for a missing success predicate, missing actions and conflicting
failure handlers.

Examples:
  hitassert validate users.check.yaml
  hitassert validate ./checks/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no suite files found"))
	}

	r := runner.NewRunner(nil)
	parseErrors, configErrors := 0, 0
	for _, file := range files {
		s, err := suite.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			parseErrors++
			continue
		}

		errs := r.Validate(s)
		if len(errs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d checks)\n", file, len(s.Checks))
			continue
		}
		for _, err := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "Invalid in %s: %v\n", file, err)
		}
		configErrors++
	}

	switch {
	case parseErrors > 0:
		return withExitCode(ExitParseError, fmt.Errorf("validation failed"))
	case configErrors > 0:
		return withExitCode(ExitCheckFailure, fmt.Errorf("validation failed"))
	}
	return nil
}
