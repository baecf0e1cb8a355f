package http

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk form of a recorded response. JSON fixtures are
// accepted too since JSON is valid YAML.
type Fixture struct {
	Status     int               `yaml:"status"`
	StatusText string            `yaml:"statusText,omitempty"`
	Headers    map[string]string `yaml:"headers,omitempty"`
	Body       string            `yaml:"body,omitempty"`
	JSON       any               `yaml:"json,omitempty"`
	DurationMs int64             `yaml:"durationMs,omitempty"`
}

// LoadFixture reads a recorded response from path.
func LoadFixture(path string) (*Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	resp, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resp, nil
}

// ParseFixture decodes a recorded response.
func ParseFixture(data []byte) (*Response, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return f.Response()
}

// Response builds the Response described by the fixture.
func (f *Fixture) Response() (*Response, error) {
	if f.Status < 100 || f.Status > 599 {
		return nil, fmt.Errorf("invalid status %d", f.Status)
	}
	if f.Body != "" && f.JSON != nil {
		return nil, fmt.Errorf("fixture sets both body and json")
	}

	headers := make(map[string]string, len(f.Headers)+1)
	for k, v := range f.Headers {
		headers[k] = v
	}

	body := []byte(f.Body)
	if f.JSON != nil {
		encoded, err := json.Marshal(normalizeYAML(f.JSON))
		if err != nil {
			return nil, fmt.Errorf("encoding json body: %w", err)
		}
		body = encoded
		if !hasHeader(headers, "Content-Type") {
			headers["Content-Type"] = "application/json"
		}
	}

	status := f.StatusText
	if status == "" {
		status = strconv.Itoa(f.Status) + " " + nethttp.StatusText(f.Status)
	}

	return &Response{
		StatusCode: f.Status,
		Status:     status,
		Headers:    headers,
		Body:       body,
		Duration:   time.Duration(f.DurationMs) * time.Millisecond,
	}, nil
}

func hasHeader(headers map[string]string, key string) bool {
	r := Response{Headers: headers}
	return r.Header(key) != ""
}

// normalizeYAML turns map[any]any nodes, which encoding/json rejects, into
// map[string]any.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
