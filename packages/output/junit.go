package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
)

// JUnitTestSuites is the report root. Each suite file becomes a testsuite
// and each check a testcase.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr,omitempty"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr,omitempty"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName    xml.Name        `xml:"testcase"`
	Name       string          `xml:"name,attr"`
	ClassName  string          `xml:"classname,attr"`
	Time       float64         `xml:"time,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	Failure    *JUnitFailure   `xml:"failure,omitempty"`
	Error      *JUnitError     `xml:"error,omitempty"`
	Skipped    *JUnitSkipped   `xml:"skipped,omitempty"`
}

type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// JUnitFailure holds unmet expectations. Message is the first one and
// Content lists them all.
type JUnitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

// JUnitError reports a check that could not run, typed by error kind.
type JUnitError struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitFormatter collects one testsuite per RunResult and writes them on Flush.
type JUnitFormatter struct {
	writer io.Writer
	suites []JUnitTestSuite
	now    func() time.Time
}

type JUnitOption func(*JUnitFormatter)

func NewJUnitFormatter(opts ...JUnitOption) *JUnitFormatter {
	f := &JUnitFormatter{
		writer: os.Stdout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JUnitWithWriter(w io.Writer) JUnitOption {
	return func(f *JUnitFormatter) {
		f.writer = w
	}
}

func (f *JUnitFormatter) FormatResult(result *runner.RunResult) {
	ts := JUnitTestSuite{
		Name:      result.File,
		Tests:     len(result.Results),
		Skipped:   result.Skipped,
		Time:      result.Duration.Seconds(),
		Timestamp: f.now().Format(time.RFC3339),
		TestCases: make([]JUnitTestCase, 0, len(result.Results)),
	}
	if result.ID != "" {
		ts.Properties = []JUnitProperty{{Name: "run_id", Value: result.ID}}
	}

	for _, r := range result.Results {
		tc := junitCase(result.File, r)
		if tc.Error != nil {
			ts.Errors++
		}
		ts.TestCases = append(ts.TestCases, tc)
	}

	ts.Failures = result.Failed - ts.Errors
	f.suites = append(f.suites, ts)
}

func junitCase(file string, r *runner.CheckResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      r.Name,
		ClassName: file,
		Time:      r.Duration.Seconds(),
	}

	if r.Successful != nil {
		tc.Properties = append(tc.Properties, JUnitProperty{Name: "successful", Value: strconv.FormatBool(*r.Successful)})
	}
	if len(r.Branches) > 0 {
		tc.Properties = append(tc.Properties, JUnitProperty{Name: "branches", Value: strings.Join(r.Branches, ", ")})
	}

	switch {
	case r.Skipped:
		tc.Skipped = &JUnitSkipped{Message: r.SkipReason}
	case r.Error != nil:
		tc.Error = &JUnitError{
			Message: r.Error.Error(),
			Type:    errorKind(r.Error),
		}
	case !r.Passed:
		msg := "expectation failed"
		if len(r.Failures) > 0 {
			msg = r.Failures[0]
		}
		tc.Failure = &JUnitFailure{
			Message: msg,
			Type:    "ExpectationFailure",
			Content: strings.Join(r.Failures, "\n"),
		}
	}
	return tc
}

func (f *JUnitFormatter) FormatError(err error) {}

func (f *JUnitFormatter) FormatHeader(version string) {}

// Flush writes the report with totals summed over all suites.
func (f *JUnitFormatter) Flush(totalDuration time.Duration) error {
	root := JUnitTestSuites{
		Name:       "hitassert",
		Time:       totalDuration.Seconds(),
		Timestamp:  f.now().Format(time.RFC3339),
		TestSuites: f.suites,
	}
	for _, ts := range f.suites {
		root.Tests += ts.Tests
		root.Failures += ts.Failures
		root.Errors += ts.Errors
		root.Skipped += ts.Skipped
	}

	if _, err := io.WriteString(f.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding junit report: %w", err)
	}
	_, err := io.WriteString(f.writer, "\n")
	return err
}
