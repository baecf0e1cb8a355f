package cmd

// Exit codes for hitassert CLI
const (
	// ExitSuccess indicates all checks passed
	ExitSuccess = 0

	// ExitCheckFailure indicates one or more checks failed, including checks
	// whose assertion was misconfigured
	ExitCheckFailure = 1

	// ExitParseError indicates a suite or fixture could not be loaded
	ExitParseError = 2

	// ExitConfigError indicates an invalid config file
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
