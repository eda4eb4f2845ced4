// Package launcher runs the preflight pipeline and hands execution off
// to the payslip application. Every step is attempted exactly once; the
// recovery mechanism for any failure is re-running the binary.
package launcher

import (
	"fmt"

	"github.com/paydeck/paylaunch/internal/config"
)

// IsolationMode decides whether the pipeline creates or uses a virtual
// environment for the application.
type IsolationMode int

const (
	// IsolationNever always uses the ambient interpreter.
	IsolationNever IsolationMode = iota
	// IsolationIfPresent uses an existing venv but never creates one.
	IsolationIfPresent
	// IsolationAlways creates the venv when missing and always uses it.
	IsolationAlways
)

// String returns the string representation of an IsolationMode.
func (m IsolationMode) String() string {
	switch m {
	case IsolationNever:
		return "never"
	case IsolationIfPresent:
		return "if-present"
	case IsolationAlways:
		return "always"
	default:
		return "unknown"
	}
}

// Profile bundles the strictness knobs of a launch. The pipeline itself
// is a single fixed sequence; profiles only decide which soft failures
// become fatal and whether the run is isolated.
type Profile struct {
	// Name is the profile's config-facing identifier.
	Name string
	// StrictCredentials makes a missing credentials file fatal whenever
	// the operator cannot (or chose not to) confirm continuing.
	StrictCredentials bool
	// RequireManifest makes a missing requirements.txt fatal instead of
	// falling back to the fixed package list.
	RequireManifest bool
	// Isolation is the virtual-environment policy.
	Isolation IsolationMode
	// FailOnInstall makes a pip failure fatal instead of a warning.
	FailOnInstall bool
}

// Built-in profiles. Strict refuses to guess; lenient launches whenever
// it plausibly can; auto sits in between and is the default.
var builtinProfiles = map[string]Profile{
	config.ProfileStrict: {
		Name:              config.ProfileStrict,
		StrictCredentials: true,
		RequireManifest:   true,
		Isolation:         IsolationAlways,
		FailOnInstall:     true,
	},
	config.ProfileLenient: {
		Name:          config.ProfileLenient,
		Isolation:     IsolationNever,
		FailOnInstall: false,
	},
	config.ProfileAuto: {
		Name:          config.ProfileAuto,
		Isolation:     IsolationIfPresent,
		FailOnInstall: true,
	},
}

// ProfileByName resolves a profile name from config or the --profile flag.
func ProfileByName(name string) (Profile, error) {
	p, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (use: strict, lenient, auto)", name)
	}
	return p, nil
}
