package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/core/config"
	"github.com/abdul-hamid-achik/hitassert/packages/core/runner"
	"github.com/abdul-hamid-achik/hitassert/packages/core/suite"
	"github.com/abdul-hamid-achik/hitassert/packages/output"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file|directory>...",
	Short: "Run check suites against recorded responses",
	Long: `Run the checks defined in suite files. Directories are searched for
*.check.yaml and *.check.yml files.

Examples:
  hitassert check users.check.yaml
  hitassert check ./checks/ --output junit
  hitassert check ./checks/ --name "create" --bail
  hitassert check ./checks/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	outputFlag  string
	nameFlag    string
	configFlag  string
	bailFlag    bool
	verboseFlag bool
	noColorFlag bool
	watchFlag   bool
)

func init() {
	checkCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("HITASSERT_OUTPUT", ""), "Output format: console, json, junit, tap (env: HITASSERT_OUTPUT)")
	checkCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only checks whose name contains this text")
	checkCmd.Flags().StringVar(&configFlag, "config", getEnvString("HITASSERT_CONFIG", ""), "Path to config file (env: HITASSERT_CONFIG)")
	checkCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("HITASSERT_BAIL", false), "Stop on first failure (env: HITASSERT_BAIL)")
	checkCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
	checkCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("HITASSERT_NO_COLOR", false), "Disable colored output (env: HITASSERT_NO_COLOR)")
	checkCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch suites and fixtures for changes and re-run checks")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// checkOptions is the effective configuration after merging the config
// file with command line flags.
type checkOptions struct {
	reporter string
	verbose  bool
	noColor  bool
	runner   *runner.Config
}

// flagOverride returns a value for Config.Merge when the flag was given on
// the command line or switched on through its environment variable.
func flagOverride(cmd *cobra.Command, name string, val bool) *bool {
	if cmd.Flags().Changed(name) || val {
		return config.BoolPtr(val)
	}
	return nil
}

func resolveOptions(cmd *cobra.Command) (*checkOptions, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	overrides := &config.Config{
		NameFilter: nameFlag,
		Bail:       flagOverride(cmd, "bail", bailFlag),
		Verbose:    flagOverride(cmd, "verbose", verboseFlag),
		NoColor:    flagOverride(cmd, "no-color", noColorFlag),
	}
	if outputFlag != "" {
		overrides.Reporters = []string{strings.ToLower(outputFlag)}
	}
	cfg := fileConfig.Merge(overrides)

	reporter := cfg.Reporter()
	if !slices.Contains(output.Reporters, reporter) {
		return nil, withExitCode(ExitUsageError, fmt.Errorf("unknown output format %q (use %s)", reporter, strings.Join(output.Reporters, ", ")))
	}

	return &checkOptions{
		reporter: reporter,
		verbose:  cfg.GetVerbose(),
		noColor:  cfg.GetNoColor(),
		runner: &runner.Config{
			Bail:       cfg.GetBail(),
			NameFilter: cfg.NameFilter,
		},
	}, nil
}

func checkCommand(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no suite files found (%s)", strings.Join(suite.FileExtensions, ", ")))
	}

	summary, err := runSuites(cmd.OutOrStdout(), cmd.ErrOrStderr(), files, opts)
	if err != nil {
		return withExitCode(ExitCheckFailure, err)
	}

	if !watchFlag {
		if code := summary.exitCode(); code != ExitSuccess {
			return withExitCode(code, nil)
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchSuites(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), args, files, opts)
}

type runSummary struct {
	passed     int
	failed     int
	skipped    int
	loadErrors int
}

// exitCode ranks load errors above check failures.
func (s runSummary) exitCode() int {
	switch {
	case s.loadErrors > 0:
		return ExitParseError
	case s.failed > 0:
		return ExitCheckFailure
	default:
		return ExitSuccess
	}
}

// runSuites runs every file through a fresh formatter. Load errors go to the
// formatter and, for machine readable reporters that drop them, to errOut.
func runSuites(out, errOut io.Writer, files []string, opts *checkOptions) (runSummary, error) {
	var summary runSummary

	formatter, err := output.New(opts.reporter, out, opts.verbose, opts.noColor)
	if err != nil {
		return summary, err
	}
	formatter.FormatHeader(version)

	r := runner.NewRunner(opts.runner)
	start := time.Now()

	for _, file := range files {
		result, err := r.RunFile(file)
		if err != nil {
			summary.loadErrors++
			formatter.FormatError(err)
			if opts.reporter != "console" {
				fmt.Fprintf(errOut, "Error: %v\n", err)
			}
			if opts.runner.Bail {
				break
			}
			continue
		}

		formatter.FormatResult(result)
		summary.passed += result.Passed
		summary.failed += result.Failed
		summary.skipped += result.Skipped

		if opts.runner.Bail && result.Failed > 0 {
			break
		}
	}

	if err := formatter.Flush(time.Since(start)); err != nil {
		return summary, fmt.Errorf("error writing output: %w", err)
	}
	return summary, nil
}

// watchSuites re-runs the suites whenever a suite, fixture, schema or .env
// file changes, until ctx is cancelled.
func watchSuites(ctx context.Context, out, errOut io.Writer, args, files []string, opts *checkOptions) error {
	logger := log.New(errOut, "hitassert: ", log.LstdFlags)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	addDir := func(dir string) {
		if watchedDirs[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			logger.Printf("failed to watch %s: %v", dir, err)
		}
		watchedDirs[dir] = true
	}

	for _, file := range files {
		addDir(filepath.Dir(file))
		if s, err := suite.Load(file); err == nil {
			for _, c := range s.Checks {
				if c.Response != "" {
					addDir(filepath.Dir(filepath.Join(s.BaseDir, c.Response)))
				}
			}
		}
	}

	// Directories given as args are watched recursively so new suites are seen
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					addDir(path)
				}
				return nil
			})
		}
	}

	fmt.Fprintf(out, "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	trigger := make(chan string, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) || !isWatchedFile(event.Name) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case trigger <- name:
				default:
				}
			})

		case name := <-trigger:
			fmt.Fprintf(out, "\n\nFile changed: %s\nRe-running checks...\n\n", name)

			current, err := collectFiles(args)
			if err != nil {
				logger.Printf("%v", err)
				continue
			}
			if _, err := runSuites(out, errOut, current, opts); err != nil {
				logger.Printf("%v", err)
			}

			fmt.Fprintf(out, "\nWatching for changes... (press Ctrl+C to stop)\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watcher error: %v", err)
		}
	}
}
