package python

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Venv is a directory-scoped virtual environment rooted at Dir.
type Venv struct {
	// Dir is the absolute path of the environment directory.
	Dir string

	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
	goos        string
}

// NewVenv creates a Venv handle for the given directory. The directory
// need not exist yet.
func NewVenv(dir string) *Venv {
	return &Venv{
		Dir:         dir,
		execCommand: exec.CommandContext,
		goos:        runtime.GOOS,
	}
}

// NewVenvWith creates a Venv with a custom command executor, used by
// tests and callers that already carry an exec seam.
func NewVenvWith(dir string, execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd) *Venv {
	v := NewVenv(dir)
	if execCommand != nil {
		v.execCommand = execCommand
	}
	return v
}

// Exists reports whether the environment has already been created.
// Presence is judged by the interpreter inside it, not the directory,
// so a half-created environment reads as absent.
func (v *Venv) Exists() bool {
	_, err := os.Stat(v.Python())
	return err == nil
}

// Python returns the path of the interpreter inside the environment.
func (v *Venv) Python() string {
	if v.goos == "windows" {
		return filepath.Join(v.Dir, "Scripts", "python.exe")
	}
	return filepath.Join(v.Dir, "bin", "python")
}

// VenvCreateError indicates `python -m venv` failed.
type VenvCreateError struct {
	Dir   string
	Cause error
}

func (e *VenvCreateError) Error() string {
	return fmt.Sprintf("failed to create virtual environment at %s: %v", e.Dir, e.Cause)
}

func (e *VenvCreateError) Unwrap() error {
	return e.Cause
}

// Create builds the environment with the given base interpreter,
// streaming the tool's own output to w. No-op if it already exists.
func (v *Venv) Create(ctx context.Context, basePython string, w io.Writer) error {
	if v.Exists() {
		return nil
	}

	cmd := v.execCommand(ctx, basePython, "-m", "venv", v.Dir)
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Run(); err != nil {
		return &VenvCreateError{Dir: v.Dir, Cause: err}
	}
	return nil
}
