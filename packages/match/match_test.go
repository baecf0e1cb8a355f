package match

import (
	"testing"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/stretchr/testify/assert"
)

func createResponse(statusCode int, body string, headers map[string]string) *http.Response {
	if headers == nil {
		headers = make(map[string]string)
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}
	return &http.Response{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       []byte(body),
		Duration:   100 * time.Millisecond,
	}
}

func TestStatusPredicates(t *testing.T) {
	ok := createResponse(200, `{}`, nil)
	notFound := createResponse(404, `{}`, nil)
	unavailable := createResponse(503, `{}`, nil)

	tests := []struct {
		name     string
		pred     Predicate
		resp     *http.Response
		expected bool
	}{
		{"status equal", Status(200), ok, true},
		{"status different", Status(200), notFound, false},
		{"status in", StatusIn(400, 404), notFound, true},
		{"status not in", StatusIn(400, 401), notFound, false},
		{"class 2xx", StatusClass("2xx"), ok, true},
		{"class 4XX", StatusClass("4XX"), notFound, true},
		{"class mismatch", StatusClass("5xx"), notFound, false},
		{"class invalid", StatusClass("9xx"), ok, false},
		{"success", Success(), ok, true},
		{"client error", ClientError(), notFound, true},
		{"server error", ServerError(), unavailable, true},
		{"nil response", Status(200), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pred(tt.resp))
		})
	}
}

func TestParseStatusClass(t *testing.T) {
	assert.NoError(t, ParseStatusClass("2xx"))
	assert.NoError(t, ParseStatusClass(" 5XX "))
	assert.Error(t, ParseStatusClass("6xx"))
	assert.Error(t, ParseStatusClass("200"))
}

func TestHeaderPredicates(t *testing.T) {
	resp := createResponse(200, `{}`, map[string]string{
		"Content-Type": "application/json; charset=utf-8",
		"X-Request-Id": "abc-123",
	})

	assert.True(t, HeaderEquals("x-request-id", "abc-123")(resp))
	assert.False(t, HeaderEquals("X-Request-Id", "abc")(resp))
	assert.True(t, HeaderContains("content-type", "application/json")(resp))
	assert.False(t, HeaderContains("X-Missing", "")(resp))
}

func TestBodyPredicates(t *testing.T) {
	resp := createResponse(400, `{"error": "invalid email"}`, nil)

	assert.True(t, BodyContains("invalid email")(resp))
	assert.False(t, BodyContains("password")(resp))
	assert.True(t, BodyMatches(`/invalid \w+/`)(resp))
	assert.False(t, BodyMatches(`^ok$`)(resp))
	assert.False(t, BodyMatches(`[unclosed`)(resp))
}

func TestCompilePattern(t *testing.T) {
	re, err := CompilePattern("/^a+$/")
	assert.NoError(t, err)
	assert.True(t, re.MatchString("aaa"))

	_, err = CompilePattern("(")
	assert.Error(t, err)
}

func TestDurationUnder(t *testing.T) {
	resp := createResponse(200, `{}`, nil)
	assert.True(t, DurationUnder(time.Second)(resp))
	assert.False(t, DurationUnder(50*time.Millisecond)(resp))
}
