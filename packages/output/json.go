package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Checks   []JSONCheck `json:"checks"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the run summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// JSONCheck represents a single check result
type JSONCheck struct {
	RunID      string        `json:"runId"`
	Name       string        `json:"name"`
	File       string        `json:"file"`
	Passed     bool          `json:"passed"`
	Skipped    bool          `json:"skipped,omitempty"`
	SkipReason string        `json:"skipReason,omitempty"`
	Successful *bool         `json:"successful,omitempty"`
	Branches   []string      `json:"branches,omitempty"`
	Failures   []string      `json:"failures,omitempty"`
	Duration   float64       `json:"duration"`
	Error      string        `json:"error,omitempty"`
	ErrorKind  string        `json:"errorKind,omitempty"`
	Response   *JSONResponse `json:"response,omitempty"`
}

// JSONResponse represents response details
type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	Status     string            `json:"status"`
	Headers    map[string]string `json:"headers,omitempty"`
	Duration   float64           `json:"duration"`
}

// JSONFormatter formats check results as JSON
type JSONFormatter struct {
	writer  io.Writer
	results []JSONCheck
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		results: make([]JSONCheck, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	for _, r := range result.Results {
		check := JSONCheck{
			RunID:      result.ID,
			Name:       r.Name,
			File:       result.File,
			Passed:     r.Passed,
			Skipped:    r.Skipped,
			Successful: r.Successful,
			Branches:   r.Branches,
			Failures:   r.Failures,
			Duration:   float64(r.Duration.Milliseconds()),
		}

		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			check.SkipReason = r.SkipReason
		}

		if r.Error != nil {
			check.Error = r.Error.Error()
			check.ErrorKind = errorKind(r.Error)
		}

		if r.Response != nil {
			check.Response = &JSONResponse{
				StatusCode: r.Response.StatusCode,
				Status:     r.Response.Status,
				Headers:    r.Response.Headers,
				Duration:   float64(r.Response.Duration.Milliseconds()),
			}
		}

		f.results = append(f.results, check)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual check results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, c := range f.results {
		if c.Skipped {
			skipped++
		} else if c.Passed {
			passed++
		} else {
			failed++
		}
	}

	output := JSONOutput{
		Summary: JSONSummary{
			Total:   len(f.results),
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Checks:   f.results,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
