// Package cmd provides the CLI commands for paylaunch.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/paydeck/paylaunch/internal/logging"
	"github.com/paydeck/paylaunch/internal/output"
	"github.com/paydeck/paylaunch/pkg/version"
)

// Persistent flags shared by every subcommand.
var (
	debugMode      bool
	noColor        bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the paylaunch CLI.
func NewRootCmd() *cobra.Command {
	launchFlags := defaultLaunchFlags()

	cmd := &cobra.Command{
		Use:   "paylaunch",
		Short: "Preflight launcher for the payslip viewer",
		Long: `paylaunch checks the hosting environment, repairs missing optional
configuration, prepares Python dependencies, and starts the payslip
viewer application.

Just run 'paylaunch' next to the application's src directory.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runLaunch(cmd, launchFlags)
		},
	}

	cmd.SetVersionTemplate("paylaunch version {{.Version}}\n")

	// The bare invocation is a launch, so it carries the launch flags.
	addLaunchFlags(cmd, launchFlags)

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.paylaunch/logs/")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newLaunchCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging sets up debug file logging if the flag is set. Without
// it, log records are discarded and the operator only sees the styled
// console output.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

// stopLogging flushes and closes the debug log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// newWriter builds the operator-facing writer, honoring --no-color and
// non-terminal stdout.
func newWriter(w io.Writer) *output.Writer {
	if noColor || !stdoutIsTerminal() {
		return output.NewPlain(w)
	}
	return output.New(w)
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
