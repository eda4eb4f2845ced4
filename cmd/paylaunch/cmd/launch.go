package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paydeck/paylaunch/internal/config"
	launcherrors "github.com/paydeck/paylaunch/internal/errors"
	"github.com/paydeck/paylaunch/internal/launcher"
	"github.com/paydeck/paylaunch/internal/prompt"
)

// launchFlags are shared between the bare invocation and the explicit
// launch subcommand.
type launchFlags struct {
	profile     string
	assumeYes   bool
	skipInstall bool
	noPause     bool
}

func defaultLaunchFlags() *launchFlags {
	return &launchFlags{}
}

func addLaunchFlags(cmd *cobra.Command, f *launchFlags) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Launch profile: strict, lenient, or auto (default from config)")
	cmd.Flags().BoolVarP(&f.assumeYes, "yes", "y", false, "Assume yes for all prompts")
	cmd.Flags().BoolVar(&f.skipInstall, "skip-install", false, "Skip the dependency install step")
	cmd.Flags().BoolVar(&f.noPause, "no-pause", false, "Do not wait for Enter before exiting")
}

func newLaunchCmd() *cobra.Command {
	flags := defaultLaunchFlags()

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Run preflight checks and start the application",
		Long: `Run the full preflight sequence and hand off to the payslip viewer:

  1. Locate a Python interpreter on PATH
  2. Verify src/, src/main.py, and requirements.txt
  3. Confirm how to proceed if credentials are missing
  4. Create .env with default values if absent
  5. Prepare a virtual environment (profile dependent)
  6. Install dependencies with pip
  7. Start the application and wait for it to exit

Each step runs exactly once. If anything fails, fix the cause and
re-run.`,
		Example: `  # Launch with the configured profile
  paylaunch launch

  # Strict launch without prompts
  paylaunch launch --profile strict --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLaunch(cmd, flags)
		},
	}

	addLaunchFlags(cmd, flags)
	return cmd
}

func runLaunch(cmd *cobra.Command, flags *launchFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	out := newWriter(cmd.OutOrStdout())
	interactive := prompt.IsTTY()

	cfg, err := config.Load(baseDir)
	if err != nil {
		launchErr := launcherrors.Wrap(launcherrors.ErrCodeConfigInvalid, err)
		fmt.Fprint(cmd.OutOrStdout(), launcherrors.FormatForCLI(launchErr))
		return launchErr
	}

	profileName := cfg.Profile
	if flags.profile != "" {
		profileName = flags.profile
	}
	profile, err := launcher.ProfileByName(profileName)
	if err != nil {
		launchErr := launcherrors.New(launcherrors.ErrCodeConfigInvalid, err.Error(), err)
		fmt.Fprint(cmd.OutOrStdout(), launcherrors.FormatForCLI(launchErr))
		return launchErr
	}

	pipeline := launcher.NewPipeline(baseDir, cfg, profile,
		launcher.WithOutput(out),
		launcher.WithLogger(slog.Default()),
		launcher.WithStdin(cmd.InOrStdin()),
		launcher.WithAssumeYes(flags.assumeYes),
		launcher.WithSkipInstall(flags.skipInstall),
		launcher.WithInteractive(interactive),
	)

	runErr := pipeline.Run(ctx)
	if runErr != nil {
		out.Newline()
		fmt.Fprint(cmd.OutOrStdout(), launcherrors.FormatForCLI(runErr))
		slog.Error("launch failed", "details", launcherrors.FormatForLog(runErr))
	}

	if interactive && !flags.noPause {
		prompt.Pause(cmd.OutOrStdout(), cmd.InOrStdin())
	}

	return runErr
}
