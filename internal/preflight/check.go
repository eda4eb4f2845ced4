package preflight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paydeck/paylaunch/internal/config"
	"github.com/paydeck/paylaunch/internal/python"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the status as its lowercase name, for doctor's
// machine-readable report.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(s.String()))
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Checker performs preflight validation checks against a base directory.
type Checker struct {
	baseDir         string
	paths           config.PathsConfig
	requireManifest bool
	verbose         bool
	output          io.Writer
	finder          *python.Finder
}

// Option configures a Checker.
type Option func(*Checker)

// WithPaths sets the artifact paths to validate (relative to base dir).
func WithPaths(paths config.PathsConfig) Option {
	return func(c *Checker) {
		c.paths = paths
	}
}

// WithRequireManifest makes a missing requirements manifest fatal
// instead of a warning.
func WithRequireManifest(required bool) Option {
	return func(c *Checker) {
		c.requireManifest = required
	}
}

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithFinder overrides the Python finder, used by tests.
func WithFinder(f *python.Finder) Option {
	return func(c *Checker) {
		c.finder = f
	}
}

// New creates a new Checker for the given base directory.
func New(baseDir string, opts ...Option) *Checker {
	c := &Checker{
		baseDir: baseDir,
		paths:   config.NewConfig().Paths,
		output:  os.Stdout,
		finder:  python.NewFinder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs all preflight checks in the pipeline's fixed order and
// returns the results. No check mutates the filesystem except the
// write-permission probe's temp file.
func (c *Checker) RunAll(ctx context.Context) []CheckResult {
	var results []CheckResult

	results = append(results, c.CheckInterpreter(ctx))
	results = append(results, c.CheckSrcDir())
	results = append(results, c.CheckEntryFile())
	results = append(results, c.CheckManifest())
	results = append(results, c.CheckCredentials())
	results = append(results, c.CheckEnvFile())
	results = append(results, c.CheckWritePermissions())

	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// SummaryStatus returns a summary status string for the results.
func (c *Checker) SummaryStatus(results []CheckResult) string {
	hasWarnings := false
	hasCriticalFailure := false

	for _, r := range results {
		if r.IsCritical() {
			hasCriticalFailure = true
		}
		if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			hasWarnings = true
		}
	}

	if hasCriticalFailure {
		return "failed"
	}
	if hasWarnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints check results to the configured output.
func (c *Checker) PrintResults(results []CheckResult) {
	_, _ = fmt.Fprintln(c.output, "paylaunch Preflight Check")
	_, _ = fmt.Fprintln(c.output, "=========================")
	_, _ = fmt.Fprintln(c.output)

	for _, r := range results {
		_, _ = fmt.Fprintf(c.output, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(c.output, "      %s\n", r.Details)
		}
	}

	_, _ = fmt.Fprintln(c.output)
	_, _ = fmt.Fprintf(c.output, "Status: %s\n", strings.ToUpper(c.SummaryStatus(results)))

	var warnings, errors []string
	for _, r := range results {
		if r.IsCritical() {
			errors = append(errors, r.Name+": "+r.Message)
		} else if r.Status == StatusWarn {
			warnings = append(warnings, r.Name+": "+r.Message)
		}
	}

	if len(errors) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d error(s):\n", len(errors))
		for _, e := range errors {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", e)
		}
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d warning(s):\n", len(warnings))
		for _, w := range warnings {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", w)
		}
	}
}

// CheckInterpreter verifies a Python interpreter is available on PATH.
func (c *Checker) CheckInterpreter(ctx context.Context) CheckResult {
	result := CheckResult{
		Name:     "python_interpreter",
		Required: true,
	}

	interp, err := c.finder.Find(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("python %s+ not found on PATH", python.MinVersion)
		result.Details = "download: " + python.DownloadURL
		return result
	}

	result.Status = StatusPass
	result.Message = interp.Version
	result.Details = interp.Path
	return result
}

// CheckWritePermissions checks if we can write to the base directory.
func (c *Checker) CheckWritePermissions() CheckResult {
	result := CheckResult{
		Name:     "write_permissions",
		Required: true,
	}

	testFile := filepath.Join(c.baseDir, ".paylaunch-preflight-test")
	f, err := os.Create(testFile)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("permission denied: %v", err)
		return result
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	result.Status = StatusPass
	result.Message = "OK"
	return result
}
