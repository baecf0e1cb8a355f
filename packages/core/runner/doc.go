// Package runner executes check suites.
//
// For every check it loads the recorded response, compiles the suite rules
// into predicates and drives an assertions.ApiAssertion. Actions record which
// branch fired (success, failure or failure[i] for conditional failures) and
// every expectation that did not hold.
//
// Checks can be filtered by name, and Bail stops at the first failure.
package runner
