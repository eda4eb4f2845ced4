package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paydeck/paylaunch/internal/envfile"
)

// CheckSrcDir verifies the required application directory exists.
func (c *Checker) CheckSrcDir() CheckResult {
	result := CheckResult{
		Name:     "src_directory",
		Required: true,
	}

	path := filepath.Join(c.baseDir, c.paths.SrcDir)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("required directory not found: %s", c.paths.SrcDir)
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = path
	return result
}

// CheckEntryFile verifies the required entry-point file exists.
func (c *Checker) CheckEntryFile() CheckResult {
	result := CheckResult{
		Name:     "entry_point",
		Required: true,
	}

	path := filepath.Join(c.baseDir, c.paths.Entry)
	if !fileExists(path) {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("required file not found: %s", c.paths.Entry)
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = path
	return result
}

// CheckManifest verifies the requirements manifest. Whether a missing
// manifest is fatal depends on the launch profile.
func (c *Checker) CheckManifest() CheckResult {
	result := CheckResult{
		Name:     "requirements_manifest",
		Required: c.requireManifest,
	}

	path := filepath.Join(c.baseDir, c.paths.Manifest)
	if !fileExists(path) {
		result.Status = StatusFail
		if !c.requireManifest {
			result.Status = StatusWarn
			result.Details = "a fixed fallback package list will be installed"
		}
		result.Message = fmt.Sprintf("manifest not found: %s", c.paths.Manifest)
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = path
	return result
}

// CheckCredentials checks the optional service-account file. Absence
// is never critical here; the pipeline decides whether to halt based
// on operator consent.
func (c *Checker) CheckCredentials() CheckResult {
	result := CheckResult{
		Name:     "credentials",
		Required: false,
	}

	path := filepath.Join(c.baseDir, c.paths.Credentials)
	if !fileExists(path) {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("credentials file not found: %s", c.paths.Credentials)
		result.Details = "the application cannot reach Google Sheets without it"
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = path
	return result
}

// CheckEnvFile checks the optional KEY=VALUE config file. A missing
// file warns (launch scaffolds it); a present file with unedited
// placeholder values also warns.
func (c *Checker) CheckEnvFile() CheckResult {
	result := CheckResult{
		Name:     "env_file",
		Required: false,
	}

	path := filepath.Join(c.baseDir, c.paths.EnvFile)
	if !envfile.Exists(path) {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%s not found", c.paths.EnvFile)
		result.Details = "launch scaffolds it with default placeholder values"
		return result
	}

	entries, err := envfile.Load(path)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%s is unreadable: %v", c.paths.EnvFile, err)
		return result
	}

	if envfile.HasPlaceholders(entries) {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%s still contains placeholder values", c.paths.EnvFile)
		result.Details = "edit it before real use"
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = path
	return result
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
