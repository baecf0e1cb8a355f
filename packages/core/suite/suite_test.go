package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fixtures/created.yaml", "status: 201\njson: {data: {id: 7}}\n")
	path := writeFile(t, dir, "users.yaml", `
checks:
  - name: create user
    response: fixtures/created.yaml
    expect: success
    success: {status: 201}
    onSuccess:
      - {path: data.id, exists: true}
    conditionalFailures:
      - when: {status: 400}
        expect:
          - {path: error.code, equals: BAD_REQUEST}
  - fixture:
      status: 500
      body: oops
    success: {statusClass: 2xx}
    onFailure: []
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path)
	assert.Equal(t, dir, s.BaseDir)
	require.Len(t, s.Checks, 2)

	first := s.Checks[0]
	assert.Equal(t, "create user", first.Name)
	assert.Equal(t, ExpectSuccess, first.Expect)
	require.NotNil(t, first.Success)
	assert.Equal(t, 201, first.Success.Status)
	assert.Len(t, first.OnSuccess, 1)
	assert.Nil(t, first.OnFailure)
	require.Len(t, first.ConditionalFailures, 1)
	assert.Equal(t, "BAD_REQUEST", first.ConditionalFailures[0].Expect[0].Equals)

	resp, err := first.LoadResponse(s.BaseDir)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	second := s.Checks[1]
	assert.Equal(t, "check 2", second.Name)
	assert.Nil(t, second.OnSuccess)
	assert.NotNil(t, second.OnFailure, "an empty list still registers the action")
	assert.Empty(t, second.OnFailure)

	resp, err = second.LoadResponse(s.BaseDir)
	require.NoError(t, err)
	assert.Equal(t, "oops", resp.BodyString())
}

func TestParse_ConditionalFailures(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - name: errors
    fixture: {status: 400}
    success: {status: 200}
    conditionalFailures:
      - when: {statusIn: [400, 422]}
        expect:
          - {path: error.code, equals: BAD_REQUEST}
          - {header: Content-Type, contains: json}
      - when: {statusClass: 5xx}
        expect: []
`), "")
	require.NoError(t, err)

	want := []ConditionalFailure{
		{
			When: Rule{StatusIn: []int{400, 422}},
			Expect: []Rule{
				{Path: "error.code", Equals: "BAD_REQUEST"},
				{Header: "Content-Type", Contains: "json"},
			},
		},
		{
			When:   Rule{StatusClass: "5xx"},
			Expect: []Rule{},
		},
	}
	if diff := cmp.Diff(want, s.Checks[0].ConditionalFailures); diff != "" {
		t.Errorf("conditional failures mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Variables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "ERROR_CODE=BAD_REQUEST\n")
	t.Setenv("HITASSERT_SUITE_HEADER", "X-Trace")

	s, err := Parse([]byte(`
variables:
  created: 201
  idPath: data.id
checks:
  - name: typed
    fixture: {status: 201}
    success: {status: "{{created}}"}
    onSuccess:
      - {path: "{{idPath}}", exists: true}
      - {header: "{{$HITASSERT_SUITE_HEADER}}", exists: true}
    conditionalFailures:
      - when: {status: 400}
        expect:
          - {path: error.code, equals: "{{ERROR_CODE}}"}
`), dir)

	require.NoError(t, err)
	c := s.Checks[0]
	assert.Equal(t, 201, c.Success.Status)
	assert.Equal(t, "data.id", c.OnSuccess[0].Path)
	assert.Equal(t, "X-Trace", c.OnSuccess[1].Header)
	assert.Equal(t, "BAD_REQUEST", c.ConditionalFailures[0].Expect[0].Equals)
}

func TestParse_EqualsNull(t *testing.T) {
	s, err := Parse([]byte(`
checks:
  - name: nulls
    fixture: {status: 200}
    success: {status: 200}
    onSuccess:
      - {path: a, equals: null}
      - {path: b, equals: ~}
      - {path: c, exists: true}
      - {path: d, equals: 0}
`), t.TempDir())
	require.NoError(t, err)

	rules := s.Checks[0].OnSuccess
	assert.True(t, rules[0].EqualsNull)
	assert.True(t, rules[1].EqualsNull)
	assert.False(t, rules[2].EqualsNull)
	assert.False(t, rules[3].EqualsNull)
	assert.Equal(t, "a == null", rules[0].String())

	tests := []struct {
		body     string
		expected bool
	}{
		{`{"a": null}`, true},
		{`{"a": 1}`, false},
		{`{"a": "<nil>"}`, false},
		{`{}`, false},
	}
	pred, err := rules[0].Compile("")
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.expected, pred(createResponse(200, tt.body)))
		})
	}
}

func TestParse_RuleUnknownField(t *testing.T) {
	_, err := Parse([]byte("checks:\n  - fixture: {status: 200}\n    success: {stauts: 200}\n    onSuccess: []"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stauts")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"empty", "", "no checks defined"},
		{"no checks", "checks: []", "no checks defined"},
		{"invalid yaml", "checks: [", "parsing suite"},
		{"unknown field", "checks:\n  - fixture: {status: 200}\n    sucess: {status: 200}", "sucess"},
		{"no response", "checks:\n  - name: a\n    success: {status: 200}", "exactly one of response or fixture"},
		{"both responses", "checks:\n  - name: a\n    response: a.yaml\n    fixture: {status: 200}", "exactly one of response or fixture"},
		{"bad expect", "checks:\n  - name: a\n    fixture: {status: 200}\n    expect: maybe", "expect must be"},
		{"unresolved variable", "checks:\n  - name: \"{{who}}\"\n    fixture: {status: 200}", "unresolved variables: who"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestIsSuiteFile(t *testing.T) {
	assert.True(t, IsSuiteFile("users.check.yaml"))
	assert.True(t, IsSuiteFile("dir/users.check.yml"))
	assert.False(t, IsSuiteFile("fixtures/created.yaml"))
	assert.False(t, IsSuiteFile("users.check.json"))
}
