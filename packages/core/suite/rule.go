package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/abdul-hamid-achik/hitassert/packages/match"
	"github.com/abdul-hamid-achik/hitassert/packages/predicate"
	"gopkg.in/yaml.v3"
)

// Rule is a declarative response predicate. Every field that is set must
// hold for the rule to match.
type Rule struct {
	Status        int    `yaml:"status,omitempty"`
	StatusIn      []int  `yaml:"statusIn,omitempty"`
	StatusClass   string `yaml:"statusClass,omitempty"`
	Header        string `yaml:"header,omitempty"`
	Path          string `yaml:"path,omitempty"`
	Equals        any    `yaml:"equals,omitempty"`
	Contains      string `yaml:"contains,omitempty"`
	Exists        *bool  `yaml:"exists,omitempty"`
	BodyContains  string `yaml:"bodyContains,omitempty"`
	BodyMatches   string `yaml:"bodyMatches,omitempty"`
	Schema        string `yaml:"schema,omitempty"`
	MaxDurationMs int64  `yaml:"maxDurationMs,omitempty"`

	// EqualsNull is set when equals was written as null, which Equals alone
	// cannot tell apart from an absent key.
	EqualsNull bool `yaml:"-"`
}

// UnmarshalYAML decodes through the caller's decoder so strict field
// checking still applies, then records an explicit equals: null.
func (r *Rule) UnmarshalYAML(unmarshal func(any) error) error {
	type plain Rule
	if err := unmarshal((*plain)(r)); err != nil {
		return err
	}
	var fields map[string]yaml.Node
	if err := unmarshal(&fields); err != nil {
		return err
	}
	if n, ok := fields["equals"]; ok && n.ShortTag() == "!!null" {
		r.EqualsNull = true
	}
	return nil
}

func (r Rule) hasEquals() bool {
	return r.Equals != nil || r.EqualsNull
}

// Compile turns the rule into a predicate. baseDir resolves the schema path,
// which must stay inside baseDir.
func (r Rule) Compile(baseDir string) (match.Predicate, error) {
	var preds []match.Predicate

	if r.Status != 0 {
		preds = append(preds, match.Status(r.Status))
	}
	if len(r.StatusIn) > 0 {
		preds = append(preds, match.StatusIn(r.StatusIn...))
	}
	if r.StatusClass != "" {
		if err := match.ParseStatusClass(r.StatusClass); err != nil {
			return nil, err
		}
		preds = append(preds, match.StatusClass(r.StatusClass))
	}

	if r.Header != "" && r.Path != "" {
		return nil, fmt.Errorf("header and path cannot be combined in one rule")
	}
	if r.Header == "" && r.Path == "" && (r.hasEquals() || r.Contains != "" || r.Exists != nil) {
		return nil, fmt.Errorf("equals, contains and exists need a header or path")
	}
	if r.Header != "" && r.EqualsNull {
		return nil, fmt.Errorf("equals null needs a path, use exists: false for a missing header")
	}
	if r.Header != "" {
		preds = append(preds, r.headerPredicate())
	}
	if r.Path != "" {
		preds = append(preds, r.pathPredicate())
	}

	if r.BodyContains != "" {
		preds = append(preds, match.BodyContains(r.BodyContains))
	}
	if r.BodyMatches != "" {
		if _, err := match.CompilePattern(r.BodyMatches); err != nil {
			return nil, err
		}
		preds = append(preds, match.BodyMatches(r.BodyMatches))
	}
	if r.Schema != "" {
		p, err := compileSchema(r.Schema, baseDir)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if r.MaxDurationMs > 0 {
		preds = append(preds, match.DurationUnder(time.Duration(r.MaxDurationMs+1)*time.Millisecond))
	}

	if len(preds) == 0 {
		return nil, fmt.Errorf("empty rule")
	}
	return predicate.And(preds...), nil
}

func (r Rule) headerPredicate() match.Predicate {
	switch {
	case r.Exists != nil && !*r.Exists:
		return predicate.Not(match.HeaderContains(r.Header, ""))
	case r.Equals != nil:
		return match.HeaderEquals(r.Header, fmt.Sprintf("%v", r.Equals))
	default:
		return match.HeaderContains(r.Header, r.Contains)
	}
}

func (r Rule) pathPredicate() match.Predicate {
	if r.Exists != nil && !*r.Exists {
		return predicate.Not(match.JSONPathExists(r.Path))
	}
	preds := []match.Predicate{match.JSONPathExists(r.Path)}
	if r.hasEquals() {
		preds = append(preds, match.JSONPathEquals(r.Path, r.Equals))
	}
	if r.Contains != "" {
		preds = append(preds, jsonPathContains(r.Path, r.Contains))
	}
	return predicate.And(preds...)
}

func jsonPathContains(path, substr string) match.Predicate {
	return func(resp *http.Response) bool {
		value, ok := match.JSONPathValue(resp, path)
		if !ok {
			return false
		}
		if items, isArray := value.([]any); isArray {
			for _, item := range items {
				if match.Equal(item, substr) {
					return true
				}
			}
			return false
		}
		return strings.Contains(fmt.Sprintf("%v", value), substr)
	}
}

func compileSchema(schemaPath, baseDir string) (match.Predicate, error) {
	if !filepath.IsAbs(schemaPath) && baseDir != "" {
		schemaPath = filepath.Join(baseDir, schemaPath)
	}
	if err := validatePathWithinBase(schemaPath, baseDir); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := match.CompileSchema(data); err != nil {
		return nil, err
	}
	return match.Schema(data), nil
}

// validatePathWithinBase rejects paths that escape baseDir.
func validatePathWithinBase(path, baseDir string) error {
	if baseDir == "" {
		return nil
	}
	cleanBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}
	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if cleanPath != cleanBase && !strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %s is outside allowed directory %s", path, baseDir)
	}
	return nil
}

// String describes the rule for reports, e.g. "status == 201, data.id exists".
func (r Rule) String() string {
	var parts []string
	if r.Status != 0 {
		parts = append(parts, fmt.Sprintf("status == %d", r.Status))
	}
	if len(r.StatusIn) > 0 {
		parts = append(parts, fmt.Sprintf("status in %v", r.StatusIn))
	}
	if r.StatusClass != "" {
		parts = append(parts, "status is "+strings.ToLower(r.StatusClass))
	}
	subject := ""
	switch {
	case r.Header != "":
		subject = "header " + r.Header
	case r.Path != "":
		subject = r.Path
	}
	if subject != "" {
		switch {
		case r.Exists != nil && !*r.Exists:
			parts = append(parts, subject+" not exists")
		case r.EqualsNull && r.Equals == nil:
			parts = append(parts, subject+" == null")
		case r.Equals != nil:
			parts = append(parts, fmt.Sprintf("%s == %v", subject, r.Equals))
		case r.Contains != "":
			parts = append(parts, fmt.Sprintf("%s contains %q", subject, r.Contains))
		default:
			parts = append(parts, subject+" exists")
		}
	}
	if r.BodyContains != "" {
		parts = append(parts, fmt.Sprintf("body contains %q", r.BodyContains))
	}
	if r.BodyMatches != "" {
		parts = append(parts, fmt.Sprintf("body matches /%s/", strings.Trim(r.BodyMatches, "/")))
	}
	if r.Schema != "" {
		parts = append(parts, "schema "+r.Schema)
	}
	if r.MaxDurationMs > 0 {
		parts = append(parts, fmt.Sprintf("duration <= %dms", r.MaxDurationMs))
	}
	if len(parts) == 0 {
		return "(empty rule)"
	}
	return strings.Join(parts, ", ")
}
