package output

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/assertions"
	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
)

// Formatter renders run results.
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
	Flush(totalDuration time.Duration) error
}

// Reporter names accepted by New.
var Reporters = []string{"console", "json", "junit", "tap"}

// New returns the formatter registered under name.
func New(name string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch name {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	case "junit":
		return NewJUnitFormatter(JUnitWithWriter(w)), nil
	case "tap":
		return NewTAPFormatter(TAPWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown reporter %q", name)
	}
}

// errorKind returns the ConfigError kind of err, or "error" for anything else.
func errorKind(err error) string {
	var cfgErr *assertions.ConfigError
	if errors.As(err, &cfgErr) {
		return string(cfgErr.Kind)
	}
	return "error"
}
