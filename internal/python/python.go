// Package python provides Python interpreter discovery and environment
// preparation for the launcher. It handles locating an interpreter on
// PATH, creating and resolving virtual environments, and installing
// the application's dependencies with pip.
package python

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// MinVersion is the minimum Python version the application supports,
// used only for operator-facing diagnostics.
const MinVersion = "3.8"

// DownloadURL points the operator at the official installer.
const DownloadURL = "https://www.python.org/downloads/"

// candidateNames are the interpreter names probed on PATH, in order.
// "py" covers the Windows launcher.
var candidateNames = []string{"python3", "python", "py"}

// Interpreter describes a discovered Python binary.
type Interpreter struct {
	// Path is the absolute path to the binary.
	Path string
	// Version is the interpreter's self-reported version string,
	// e.g. "Python 3.11.4". Informational only.
	Version string
}

// Finder locates Python interpreters. The exec seams are injectable
// for tests.
type Finder struct {
	lookPath    func(file string) (string, error)
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewFinder creates a Finder backed by the real exec package.
func NewFinder() *Finder {
	return &Finder{
		lookPath:    exec.LookPath,
		execCommand: exec.CommandContext,
	}
}

// NewFinderWith creates a Finder with custom PATH lookup and command
// execution, used by tests and callers that restrict discovery.
func NewFinderWith(
	lookPath func(file string) (string, error),
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd,
) *Finder {
	f := NewFinder()
	if lookPath != nil {
		f.lookPath = lookPath
	}
	if execCommand != nil {
		f.execCommand = execCommand
	}
	return f
}

// NotInstalledError indicates no Python interpreter was found on PATH.
type NotInstalledError struct{}

func (e *NotInstalledError) Error() string {
	return "python is not installed or not on PATH"
}

// Find searches PATH for a runnable Python interpreter and returns it
// together with its version string. Returns NotInstalledError when no
// candidate is found.
func (f *Finder) Find(ctx context.Context) (*Interpreter, error) {
	for _, name := range candidateNames {
		path, err := f.lookPath(name)
		if err != nil {
			continue
		}

		version, err := f.probeVersion(ctx, path)
		if err != nil {
			// A binary that cannot report its version is not usable.
			continue
		}

		return &Interpreter{Path: path, Version: version}, nil
	}

	return nil, &NotInstalledError{}
}

// probeVersion runs `<python> --version` and returns the trimmed output.
// Older interpreters print the version to stderr, so both streams are
// captured.
func (f *Finder) probeVersion(ctx context.Context, path string) (string, error) {
	cmd := f.execCommand(ctx, path, "--version")

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to probe %s: %w", path, err)
	}

	version := strings.TrimSpace(buf.String())
	if version == "" {
		return "", fmt.Errorf("%s reported an empty version", path)
	}
	return version, nil
}

// InstallInstructions returns platform-specific install guidance shown
// when no interpreter is found.
func InstallInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf(`Python %s or newer is required.

Install options:
  1. Download from: %s
  2. Or via Homebrew: brew install python3`, MinVersion, DownloadURL)
	case "linux":
		return fmt.Sprintf(`Python %s or newer is required.

Install with your package manager, e.g.:
  sudo apt install python3 python3-venv python3-pip

Or download from: %s`, MinVersion, DownloadURL)
	default:
		return fmt.Sprintf(`Python %s or newer is required.

Download from: %s
During installation, check "Add Python to PATH".`, MinVersion, DownloadURL)
	}
}
