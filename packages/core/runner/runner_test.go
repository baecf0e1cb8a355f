package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/hitassert/packages/assertions"
	"github.com/abdul-hamid-achik/hitassert/packages/core/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	fixtures := map[string]string{
		"ok.yaml":  "status: 200\njson: {status: OK, data: {id: 1}}\n",
		"bad.yaml": "status: 400\njson: {status: KO, error: {code: BAD_REQUEST}}\n",
	}
	for name, data := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runSuite(t *testing.T, cfg *Config, content string) *RunResult {
	t.Helper()
	result, err := NewRunner(cfg).RunFile(writeSuite(t, content))
	require.NoError(t, err)
	return result
}

func TestNewRunner(t *testing.T) {
	t.Run("with nil config", func(t *testing.T) {
		r := NewRunner(nil)
		assert.NotNil(t, r)
		assert.NotNil(t, r.config)
	})

	t.Run("with custom config", func(t *testing.T) {
		r := NewRunner(&Config{Bail: true, NameFilter: "users"})
		assert.True(t, r.config.Bail)
		assert.Equal(t, "users", r.config.NameFilter)
	})
}

func TestRunner_SuccessBranch(t *testing.T) {
	result := runSuite(t, nil, `
checks:
  - name: ok
    response: ok.yaml
    success: {status: 200}
    onSuccess:
      - {path: data.id, equals: 1}
`)

	require.Len(t, result.Results, 1)
	cr := result.Results[0]
	assert.True(t, cr.Passed)
	assert.NoError(t, cr.Error)
	assert.Equal(t, []string{BranchSuccess}, cr.Branches)
	require.NotNil(t, cr.Successful)
	assert.True(t, *cr.Successful)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 1, result.Passed)
}

func TestRunner_ConditionalFailures(t *testing.T) {
	result := runSuite(t, nil, `
checks:
  - name: bad request
    response: bad.yaml
    success: {status: 200}
    onSuccess: []
    conditionalFailures:
      - when: {status: 400}
        expect:
          - {path: error.code, equals: BAD_REQUEST}
      - when: {status: 401}
        expect:
          - {path: error.code, equals: UNAUTHORIZED}
      - when: {statusClass: 4xx}
        expect:
          - {path: status, equals: OK}
`)

	cr := result.Results[0]
	assert.Equal(t, []string{"failure[0]", "failure[2]"}, cr.Branches)
	assert.Equal(t, []string{"failure[2]: expected status == OK"}, cr.Failures)
	assert.False(t, cr.Passed)
	assert.Equal(t, 1, result.Failed)
}

func TestRunner_UnconditionalFailure(t *testing.T) {
	result := runSuite(t, nil, `
checks:
  - name: bad request
    response: bad.yaml
    expect: failure
    success: {status: 200}
    onFailure:
      - {status: 400}
      - {header: Content-Type, contains: json}
`)

	cr := result.Results[0]
	assert.True(t, cr.Passed, "failures: %v", cr.Failures)
	assert.Equal(t, []string{BranchFailure}, cr.Branches)
}

func TestRunner_ExpectedOutcome(t *testing.T) {
	result := runSuite(t, nil, `
checks:
  - name: should succeed
    response: bad.yaml
    expect: success
    success: {status: 200}
    onSuccess: []
  - name: should fail
    response: ok.yaml
    expect: failure
    success: {status: 200}
    onFailure: []
`)

	assert.Equal(t, []string{"expected a successful response"}, result.Results[0].Failures)
	assert.Equal(t, []string{"expected a failed response"}, result.Results[1].Failures)
	assert.Equal(t, 2, result.Failed)
}

func TestRunner_ConfigurationErrors(t *testing.T) {
	result := runSuite(t, nil, `
checks:
  - name: no predicate
    response: ok.yaml
    onSuccess: []
  - name: no action
    response: ok.yaml
    success: {status: 200}
  - name: conflicting
    response: bad.yaml
    success: {status: 200}
    onFailure: []
    conditionalFailures:
      - when: {status: 400}
        expect: []
`)

	require.Len(t, result.Results, 3)
	assert.True(t, errors.Is(result.Results[0].Error, assertions.ErrMissingPredicate))
	assert.True(t, errors.Is(result.Results[1].Error, assertions.ErrMissingAction))
	assert.True(t, errors.Is(result.Results[2].Error, assertions.ErrConflictingFailure))
	assert.Empty(t, result.Results[2].Branches, "nothing runs when validation fails")
	assert.Equal(t, 3, result.Failed)
}

func TestRunner_RuleAndFixtureErrors(t *testing.T) {
	result := runSuite(t, nil, `
checks:
  - name: missing fixture
    response: nope.yaml
    success: {status: 200}
    onSuccess: []
  - name: bad rule
    response: ok.yaml
    success: {statusClass: 9xx}
    onSuccess: []
`)

	assert.ErrorContains(t, result.Results[0].Error, "loading response")
	assert.ErrorContains(t, result.Results[1].Error, "success: invalid status class")
}

func TestRunner_NameFilter(t *testing.T) {
	result := runSuite(t, &Config{NameFilter: "users"}, `
checks:
  - name: list users
    response: ok.yaml
    success: {status: 200}
    onSuccess: []
  - name: list orders
    response: ok.yaml
    success: {status: 200}
    onSuccess: []
`)

	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "filtered out", result.Results[1].SkipReason)
}

func TestRunner_Bail(t *testing.T) {
	content := `
checks:
  - name: first
    response: ok.yaml
    onSuccess: []
  - name: second
    response: ok.yaml
    success: {status: 200}
    onSuccess: []
`
	result := runSuite(t, &Config{Bail: true}, content)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	assert.True(t, result.Results[1].Skipped)

	result = runSuite(t, nil, content)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Passed)
}

func TestRunner_RunFileError(t *testing.T) {
	_, err := NewRunner(nil).RunFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "loading suite")
}

func TestRunner_Validate(t *testing.T) {
	s, err := suite.Load(writeSuite(t, `
checks:
  - name: valid
    response: ok.yaml
    success: {status: 200}
    onSuccess: []
  - name: no action
    response: ok.yaml
    success: {status: 200}
  - name: missing fixture
    response: nope.yaml
    success: {status: 200}
    onSuccess: []
`))
	require.NoError(t, err)

	errs := NewRunner(nil).Validate(s)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], assertions.ErrMissingAction))
	assert.Contains(t, errs[0].Error(), "no action: Define at least API onSuccess or onFailure assertions")
	assert.Contains(t, errs[1].Error(), "missing fixture")
}
