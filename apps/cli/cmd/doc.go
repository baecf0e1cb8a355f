// Package cmd implements the hitassert CLI commands using Cobra.
//
// Available commands:
//   - check: Run check suites against their recorded responses
//   - validate: Check suite files and assertion configuration without running them
//   - list: Display the checks and configured branches of each suite
//   - init: Create an example suite with fixtures
//   - version: Show hitassert version information
//
// check supports reporter selection, bail, name filtering and a watch mode
// that re-runs suites when they or their fixtures change.
package cmd
