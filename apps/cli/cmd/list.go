package cmd

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/hitassert/packages/core/suite"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>...",
	Short: "List all checks in suite files",
	Long: `List the checks defined in suite files together with their success
predicate and the actions they register.

Examples:
  hitassert list users.check.yaml
  hitassert list ./checks/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no suite files found"))
	}

	for _, file := range files {
		s, err := suite.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		for _, c := range s.Checks {
			printCheck(cmd.OutOrStdout(), c)
		}
	}

	return nil
}

func printCheck(w io.Writer, c *suite.Check) {
	fmt.Fprintf(w, "  - %s\n", c.Name)
	if c.Success != nil {
		fmt.Fprintf(w, "    success: %s\n", c.Success)
	} else {
		fmt.Fprintf(w, "    success: (none)\n")
	}
	if c.OnSuccess != nil {
		fmt.Fprintf(w, "    onSuccess: %d expectations\n", len(c.OnSuccess))
	}
	if c.OnFailure != nil {
		fmt.Fprintf(w, "    onFailure: %d expectations\n", len(c.OnFailure))
	}
	for i, cf := range c.ConditionalFailures {
		fmt.Fprintf(w, "    failure[%d] when %s: %d expectations\n", i, cf.When, len(cf.Expect))
	}
	if c.Expect != suite.ExpectAny {
		fmt.Fprintf(w, "    expect: %s\n", c.Expect)
	}
}
