package python

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// FallbackPackages is the fixed minimal package list installed when no
// requirements manifest exists and the profile tolerates that. These
// are the direct imports of the payslip application.
var FallbackPackages = []string{
	"flask",
	"google-api-python-client",
	"google-auth",
	"pillow",
	"python-dotenv",
}

// Installer runs pip against a chosen interpreter. The exec seam is
// injectable for tests.
type Installer struct {
	python      string
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewInstaller creates an Installer bound to the given interpreter path.
func NewInstaller(python string) *Installer {
	return &Installer{
		python:      python,
		execCommand: exec.CommandContext,
	}
}

// NewInstallerWith creates an Installer with a custom command executor,
// used by tests and callers that already carry an exec seam.
func NewInstallerWith(python string, execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd) *Installer {
	i := NewInstaller(python)
	if execCommand != nil {
		i.execCommand = execCommand
	}
	return i
}

// PipInstallError indicates a pip invocation exited nonzero.
type PipInstallError struct {
	Cause error
}

func (e *PipInstallError) Error() string {
	return fmt.Sprintf("pip install failed: %v", e.Cause)
}

func (e *PipInstallError) Unwrap() error {
	return e.Cause
}

// InstallRequirements runs `pip install -r <manifest>` exactly once,
// streaming pip's own output to w.
func (i *Installer) InstallRequirements(ctx context.Context, manifest string, w io.Writer) error {
	return i.run(ctx, w, "-m", "pip", "install", "-r", manifest)
}

// InstallPackages installs an explicit package list, used as the
// fallback when no manifest exists.
func (i *Installer) InstallPackages(ctx context.Context, packages []string, w io.Writer) error {
	args := append([]string{"-m", "pip", "install"}, packages...)
	return i.run(ctx, w, args...)
}

func (i *Installer) run(ctx context.Context, w io.Writer, args ...string) error {
	cmd := i.execCommand(ctx, i.python, args...)
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Run(); err != nil {
		return &PipInstallError{Cause: err}
	}
	return nil
}
