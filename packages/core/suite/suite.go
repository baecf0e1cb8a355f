package suite

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/core/env"
	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"gopkg.in/yaml.v3"
)

// Suite is a parsed check file.
type Suite struct {
	Path      string         `yaml:"-"`
	BaseDir   string         `yaml:"-"`
	Variables map[string]any `yaml:"variables,omitempty"`
	Checks    []*Check       `yaml:"checks"`
}

// Check describes one ApiAssertion. A nil OnSuccess or OnFailure means the
// action is not registered; an empty list registers an action without
// expectations.
type Check struct {
	Name                string               `yaml:"name"`
	Response            string               `yaml:"response,omitempty"`
	Fixture             *http.Fixture        `yaml:"fixture,omitempty"`
	Expect              string               `yaml:"expect,omitempty"`
	Success             *Rule                `yaml:"success,omitempty"`
	OnSuccess           []Rule               `yaml:"onSuccess"`
	OnFailure           []Rule               `yaml:"onFailure"`
	ConditionalFailures []ConditionalFailure `yaml:"conditionalFailures,omitempty"`
}

// ConditionalFailure is checked only for failed responses matching When.
type ConditionalFailure struct {
	When   Rule   `yaml:"when"`
	Expect []Rule `yaml:"expect"`
}

// Expected outcomes for Check.Expect.
const (
	ExpectAny     = ""
	ExpectSuccess = "success"
	ExpectFailure = "failure"
)

// FileExtensions lists the suite file suffixes picked up from directories.
// Plain .yaml files are left alone since fixtures use them too.
var FileExtensions = []string{".check.yaml", ".check.yml"}

// IsSuiteFile reports whether path has a suite file suffix.
func IsSuiteFile(path string) bool {
	for _, e := range FileExtensions {
		if strings.HasSuffix(path, e) {
			return true
		}
	}
	return false
}

// Load reads and parses the suite at path.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}
	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes a suite. baseDir resolves relative fixture and schema paths
// and is where a .env file is looked up.
func Parse(data []byte, baseDir string) (*Suite, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing suite: %w", err)
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("no checks defined")
	}

	vars := map[string]any{}
	if node := mappingValue(&root, "variables"); node != nil {
		if err := node.Decode(&vars); err != nil {
			return nil, fmt.Errorf("parsing variables: %w", err)
		}
	}
	dotenv, err := env.LoadDotEnv(filepath.Join(baseDir, ".env"))
	if err != nil {
		return nil, err
	}
	if err := resolveNode(&root, env.NewResolver(env.Merge(dotenv, vars))); err != nil {
		return nil, err
	}

	resolved, err := yaml.Marshal(&root)
	if err != nil {
		return nil, fmt.Errorf("encoding resolved suite: %w", err)
	}

	s := &Suite{BaseDir: baseDir}
	dec := yaml.NewDecoder(bytes.NewReader(resolved))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("parsing suite: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Suite) validate() error {
	if len(s.Checks) == 0 {
		return fmt.Errorf("no checks defined")
	}
	for i, c := range s.Checks {
		if c == nil {
			return fmt.Errorf("check %d is empty", i+1)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("check %d", i+1)
		}
		if (c.Response == "") == (c.Fixture == nil) {
			return fmt.Errorf("%s: exactly one of response or fixture is required", c.Name)
		}
		switch c.Expect {
		case ExpectAny, ExpectSuccess, ExpectFailure:
		default:
			return fmt.Errorf("%s: expect must be %q or %q, got %q", c.Name, ExpectSuccess, ExpectFailure, c.Expect)
		}
	}
	return nil
}

// LoadResponse returns the response the check runs against.
func (c *Check) LoadResponse(baseDir string) (*http.Response, error) {
	if c.Fixture != nil {
		return c.Fixture.Response()
	}
	path := c.Response
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return http.LoadFixture(path)
}
