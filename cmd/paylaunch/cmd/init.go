package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/paydeck/paylaunch/configs"
	"github.com/paydeck/paylaunch/internal/config"
	"github.com/paydeck/paylaunch/internal/envfile"
	"github.com/paydeck/paylaunch/internal/launcher"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold the launcher's optional files",
		Long: `Create the optional artifacts a launch expects:

  - .env with default placeholder values
  - .paylaunch.yaml configuration template

Existing files are never overwritten. The credentials setup guide is
printed when src/credentials.json is missing (or always with --force).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Print the credentials guide even when the file exists")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	out := newWriter(cmd.OutOrStdout())
	cfg := config.NewConfig()

	// .env with the two default entries.
	envPath := filepath.Join(baseDir, cfg.Paths.EnvFile)
	created, err := envfile.Scaffold(envPath)
	if err != nil {
		return err
	}
	if created {
		out.Successf("created %s, edit its values before launching", cfg.Paths.EnvFile)
	} else {
		out.Statusf("", "%s already exists, left untouched", cfg.Paths.EnvFile)
	}

	// Project config template.
	configPath := filepath.Join(baseDir, ".paylaunch.yaml")
	if _, err := os.Stat(configPath); err == nil {
		out.Status("", ".paylaunch.yaml already exists, left untouched")
	} else {
		if err := os.WriteFile(configPath, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", configPath, err)
		}
		out.Success("created .paylaunch.yaml")
	}

	// Credentials guidance.
	credPath := filepath.Join(baseDir, cfg.Paths.Credentials)
	if _, err := os.Stat(credPath); err == nil && !force {
		out.Successf("%s present", cfg.Paths.Credentials)
	} else {
		out.Newline()
		out.Header("Credentials setup")
		out.Code(launcher.CredentialsGuide)
	}

	out.Newline()
	out.Status("", "run 'paylaunch doctor' to verify the setup")
	return nil
}
