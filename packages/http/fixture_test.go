package http

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture_JSONBody(t *testing.T) {
	data := `
status: 400
headers:
  X-Request-Id: abc
json:
  error:
    code: BAD_REQUEST
    fields: [name, email]
durationMs: 42
`
	resp, err := ParseFixture([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "400 Bad Request", resp.Status)
	assert.Equal(t, "abc", resp.Header("X-Request-Id"))
	assert.Equal(t, "application/json", resp.ContentType())
	assert.JSONEq(t, `{"error": {"code": "BAD_REQUEST", "fields": ["name", "email"]}}`, resp.BodyString())
	assert.Equal(t, 42*time.Millisecond, resp.Duration)
}

func TestParseFixture_RawBody(t *testing.T) {
	data := `{"status": 200, "statusText": "200 Fine", "headers": {"Content-Type": "text/plain"}, "body": "hello"}`

	resp, err := ParseFixture([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, "200 Fine", resp.Status)
	assert.Equal(t, "hello", resp.BodyString())
	assert.False(t, resp.IsJSON())
}

func TestParseFixture_KeepsExplicitContentType(t *testing.T) {
	data := `
status: 200
headers:
  content-type: application/problem+json
json: {title: oops}
`
	resp, err := ParseFixture([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, "application/problem+json", resp.ContentType())
	assert.Len(t, resp.Headers, 1)
}

func TestParseFixture_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "status: [200"},
		{"missing status", "body: hi"},
		{"status out of range", "status: 700"},
		{"body and json", "status: 200\nbody: hi\njson: {a: 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.yaml")
	require.NoError(t, os.WriteFile(path, []byte("status: 204\n"), 0644))

	resp, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Empty(t, resp.Body)

	_, err = LoadFixture(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
