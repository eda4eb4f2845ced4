package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paydeck/paylaunch/internal/config"
	"github.com/paydeck/paylaunch/internal/launcher"
	"github.com/paydeck/paylaunch/internal/preflight"
)

func newDoctorCmd() *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check launch requirements without launching",
		Long: `Run every preflight check read-only and report the results.

Checks:
  - Python interpreter on PATH
  - src/ directory and src/main.py
  - requirements.txt (strictness depends on the configured profile)
  - src/credentials.json
  - .env presence and placeholder values
  - Write permissions in the launch directory

Nothing is created or installed. Use --verbose for details and --json
for machine-readable output.`,
		Example: `  # Run diagnostics
  paylaunch doctor

  # JSON output for scripting
  paylaunch doctor --json`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, verbose, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed diagnostic info")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runDoctor(cmd *cobra.Command, verbose, jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return err
	}

	profile, err := launcher.ProfileByName(cfg.Profile)
	if err != nil {
		return err
	}

	checker := preflight.New(baseDir,
		preflight.WithPaths(cfg.Paths),
		preflight.WithRequireManifest(profile.RequireManifest),
		preflight.WithVerbose(verbose),
		preflight.WithOutput(cmd.OutOrStdout()),
	)

	results := checker.RunAll(ctx)

	if jsonOutput {
		if err := outputJSON(cmd, checker, results); err != nil {
			return err
		}
		if checker.HasCriticalFailures(results) {
			return &doctorError{message: "launch requirements not met"}
		}
		return nil
	}

	checker.PrintResults(results)

	dataDir := launcher.DataDir(baseDir)
	if !preflight.NeedsCheck(dataDir) {
		if age := preflight.MarkerAge(dataDir); age > 0 {
			cmd.Printf("\nLast successful launch check: %s ago\n", formatAge(age))
		}
	}

	if checker.HasCriticalFailures(results) {
		return &doctorError{message: "launch requirements not met"}
	}
	return nil
}

// doctorError keeps cobra from printing usage for a failed diagnosis.
type doctorError struct {
	message string
}

func (e *doctorError) Error() string {
	return e.message
}

// doctorJSON is the machine-readable doctor report.
type doctorJSON struct {
	Status   string                  `json:"status"`
	Checks   []preflight.CheckResult `json:"checks"`
	Warnings []string                `json:"warnings,omitempty"`
	Errors   []string                `json:"errors,omitempty"`
}

func outputJSON(cmd *cobra.Command, checker *preflight.Checker, results []preflight.CheckResult) error {
	report := doctorJSON{
		Status: checker.SummaryStatus(results),
		Checks: results,
	}

	for _, r := range results {
		if r.IsCritical() {
			report.Errors = append(report.Errors, r.Name+": "+r.Message)
		} else if r.Status == preflight.StatusWarn {
			report.Warnings = append(report.Warnings, r.Name+": "+r.Message)
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// formatAge renders a duration in coarse human units.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
}
