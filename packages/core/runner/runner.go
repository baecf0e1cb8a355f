package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/assertions"
	"github.com/abdul-hamid-achik/hitassert/packages/core/suite"
	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/abdul-hamid-achik/hitassert/packages/match"
	"github.com/google/uuid"
)

// Branch names reported in CheckResult.Branches.
const (
	BranchSuccess = "success"
	BranchFailure = "failure"
)

type Runner struct {
	config *Config
}

type Config struct {
	Bail       bool
	NameFilter string
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Runner{config: cfg}
}

type RunResult struct {
	ID       string
	File     string
	Results  []*CheckResult
	Duration time.Duration
	Passed   int
	Failed   int
	Skipped  int
}

type CheckResult struct {
	Name       string
	Passed     bool
	Skipped    bool
	SkipReason string
	Successful *bool
	Branches   []string
	Failures   []string
	Response   *http.Response
	Duration   time.Duration
	Error      error
}

func (r *Runner) RunFile(path string) (*RunResult, error) {
	s, err := suite.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading suite: %w", err)
	}
	return r.Run(s), nil
}

func (r *Runner) Run(s *suite.Suite) *RunResult {
	start := time.Now()
	result := &RunResult{
		ID:   uuid.New().String(),
		File: s.Path,
	}

	bailed := false
	for _, c := range s.Checks {
		var cr *CheckResult
		switch {
		case r.config.NameFilter != "" && !strings.Contains(c.Name, r.config.NameFilter):
			cr = &CheckResult{Name: c.Name, Skipped: true, SkipReason: "filtered out"}
		case bailed:
			cr = &CheckResult{Name: c.Name, Skipped: true, SkipReason: "bail: previous check failed"}
		default:
			cr = r.runCheck(c, s.BaseDir)
		}

		result.Results = append(result.Results, cr)
		switch {
		case cr.Skipped:
			result.Skipped++
		case cr.Passed:
			result.Passed++
		default:
			result.Failed++
			if r.config.Bail {
				bailed = true
			}
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (r *Runner) runCheck(c *suite.Check, baseDir string) *CheckResult {
	start := time.Now()
	result := &CheckResult{Name: c.Name}
	defer func() {
		result.Duration = time.Since(start)
	}()

	resp, err := c.LoadResponse(baseDir)
	if err != nil {
		result.Error = fmt.Errorf("loading response: %w", err)
		return result
	}
	result.Response = resp

	compiled, err := compileCheck(c, baseDir)
	if err != nil {
		result.Error = err
		return result
	}

	a := compiled.build(resp, result)
	if err := a.Test(); err != nil {
		result.Error = err
		return result
	}

	if result.Successful != nil {
		switch {
		case c.Expect == suite.ExpectSuccess && !*result.Successful:
			result.Failures = append(result.Failures, "expected a successful response")
		case c.Expect == suite.ExpectFailure && *result.Successful:
			result.Failures = append(result.Failures, "expected a failed response")
		}
	}

	result.Passed = len(result.Failures) == 0
	return result
}

// Validate checks every builder configuration in the suite without running
// any predicate or action. Fixtures are loaded so broken paths surface too.
func (r *Runner) Validate(s *suite.Suite) []error {
	var errs []error
	for _, c := range s.Checks {
		if _, err := c.LoadResponse(s.BaseDir); err != nil {
			errs = append(errs, fmt.Errorf("%s: loading response: %w", c.Name, err))
			continue
		}
		compiled, err := compileCheck(c, s.BaseDir)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}
		if err := compiled.build(nil, &CheckResult{}).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errs
}

type expectation struct {
	rule suite.Rule
	pred match.Predicate
}

type conditional struct {
	when   match.Predicate
	expect []expectation
}

type compiledCheck struct {
	success     match.Predicate
	onSuccess   []expectation
	onFailure   []expectation
	conditional []conditional
	hasSuccess  bool
	hasFailure  bool
}

func compileCheck(c *suite.Check, baseDir string) (*compiledCheck, error) {
	cc := &compiledCheck{
		hasSuccess: c.OnSuccess != nil,
		hasFailure: c.OnFailure != nil,
	}

	if c.Success != nil {
		p, err := c.Success.Compile(baseDir)
		if err != nil {
			return nil, fmt.Errorf("success: %w", err)
		}
		cc.success = p
	}

	var err error
	if cc.onSuccess, err = compileExpectations(c.OnSuccess, baseDir, "onSuccess"); err != nil {
		return nil, err
	}
	if cc.onFailure, err = compileExpectations(c.OnFailure, baseDir, "onFailure"); err != nil {
		return nil, err
	}

	for i, cf := range c.ConditionalFailures {
		label := fmt.Sprintf("conditionalFailures[%d]", i)
		when, err := cf.When.Compile(baseDir)
		if err != nil {
			return nil, fmt.Errorf("%s.when: %w", label, err)
		}
		expect, err := compileExpectations(cf.Expect, baseDir, label+".expect")
		if err != nil {
			return nil, err
		}
		cc.conditional = append(cc.conditional, conditional{when: when, expect: expect})
	}

	return cc, nil
}

func compileExpectations(rules []suite.Rule, baseDir, label string) ([]expectation, error) {
	out := make([]expectation, 0, len(rules))
	for i, rule := range rules {
		p, err := rule.Compile(baseDir)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", label, i, err)
		}
		out = append(out, expectation{rule: rule, pred: p})
	}
	return out, nil
}

// build wires the compiled check into an ApiAssertion whose actions record
// into result.
func (cc *compiledCheck) build(resp *http.Response, result *CheckResult) *assertions.ApiAssertion[*http.Response] {
	a := assertions.New(resp)

	if cc.success != nil {
		a.IsSuccessful(func(r *http.Response) bool {
			ok := cc.success(r)
			result.Successful = &ok
			return ok
		})
	}
	if cc.hasSuccess {
		a.OnSuccess(expectAction(BranchSuccess, cc.onSuccess, result))
	}
	if cc.hasFailure {
		a.OnFailure(expectAction(BranchFailure, cc.onFailure, result))
	}
	for i, c := range cc.conditional {
		a.OnFailureWhen(c.when, expectAction(fmt.Sprintf("%s[%d]", BranchFailure, i), c.expect, result))
	}
	return a
}

func expectAction(branch string, expect []expectation, result *CheckResult) func(*http.Response) {
	return func(r *http.Response) {
		result.Branches = append(result.Branches, branch)
		for _, e := range expect {
			if !e.pred(r) {
				result.Failures = append(result.Failures, fmt.Sprintf("%s: expected %s", branch, e.rule))
			}
		}
	}
}
