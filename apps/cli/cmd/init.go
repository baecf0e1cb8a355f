package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/hitassert/packages/core/config"
	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hitassert project",
	Long: `Initialize a new hitassert project in the current directory.

This creates:
  - .hitassert.config.json     - Configuration file
  - example.check.yaml         - Example check suite
  - fixtures/created.yaml      - Recorded successful response
  - fixtures/bad-request.yaml  - Recorded failed response

Examples:
  hitassert init
  hitassert init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleSuite = `variables:
  created: 201

checks:
  - name: create user
    response: fixtures/created.yaml
    expect: success
    success: {status: "{{created}}"}
    onSuccess:
      - {path: data.id, exists: true}
      - {header: Content-Type, contains: json}
    onFailure:
      - {bodyContains: error}

  - name: reject invalid user
    response: fixtures/bad-request.yaml
    expect: failure
    success: {statusClass: 2xx}
    onSuccess: []
    conditionalFailures:
      - when: {status: 400}
        expect:
          - {path: error.code, equals: BAD_REQUEST}
      - when: {statusClass: 5xx}
        expect:
          - {path: error.retryable, equals: true}
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	suiteFile := filepath.Join(cwd, "example.check.yaml")
	createdFile := filepath.Join(cwd, "fixtures", "created.yaml")
	badRequestFile := filepath.Join(cwd, "fixtures", "bad-request.yaml")

	if !forceInit {
		for _, f := range []string{configFile, suiteFile, createdFile, badRequestFile} {
			if _, err := os.Stat(f); err == nil {
				return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	cfg := &config.Config{
		Reporters: []string{"console"},
		Bail:      config.BoolPtr(false),
		NoColor:   config.BoolPtr(false),
	}
	configJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := writeInitFile(cmd, configFile, append(configJSON, '\n')); err != nil {
		return err
	}

	if err := writeInitFile(cmd, suiteFile, []byte(exampleSuite)); err != nil {
		return err
	}

	fixtures := map[string]*http.Fixture{
		createdFile: {
			Status:     201,
			Headers:    map[string]string{"Location": "/users/42"},
			JSON:       map[string]any{"data": map[string]any{"id": 42, "name": "Ada"}},
			DurationMs: 35,
		},
		badRequestFile: {
			Status: 400,
			JSON: map[string]any{"error": map[string]any{
				"code":    "BAD_REQUEST",
				"message": "name is required",
			}},
			DurationMs: 12,
		},
	}
	for _, path := range []string{createdFile, badRequestFile} {
		data, err := yaml.Marshal(fixtures[path])
		if err != nil {
			return fmt.Errorf("failed to encode fixture: %w", err)
		}
		if err := writeInitFile(cmd, path, data); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nhitassert project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'hitassert check example.check.yaml' to run the example checks.\n")

	return nil
}

func writeInitFile(cmd *cobra.Command, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
	return nil
}
