package preflight

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydeck/paylaunch/internal/python"
)

// foundFinder pretends python3 is installed and reports a version.
func foundFinder() *python.Finder {
	return python.NewFinderWith(
		func(file string) (string, error) {
			if file == "python3" {
				return "/usr/bin/python3", nil
			}
			return "", exec.ErrNotFound
		},
		func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "sh", "-c", "echo Python 3.11.4")
		},
	)
}

// missingFinder pretends no interpreter exists.
func missingFinder() *python.Finder {
	return python.NewFinderWith(
		func(string) (string, error) { return "", exec.ErrNotFound },
		nil,
	)
}

// scaffoldProject creates the required layout inside dir.
func scaffoldProject(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.py"), []byte("print('hi')\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("flask\n"), 0o644))
}

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{StatusPass, "PASS"},
		{StatusWarn, "WARN"},
		{StatusFail, "FAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestCheckResult_IsCritical(t *testing.T) {
	tests := []struct {
		name     string
		result   CheckResult
		expected bool
	}{
		{"required pass is not critical", CheckResult{Status: StatusPass, Required: true}, false},
		{"required fail is critical", CheckResult{Status: StatusFail, Required: true}, true},
		{"optional fail is not critical", CheckResult{Status: StatusFail, Required: false}, false},
		{"required warn is not critical", CheckResult{Status: StatusWarn, Required: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.IsCritical())
		})
	}
}

func TestCheckInterpreter(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c := New(t.TempDir(), WithFinder(foundFinder()))
		result := c.CheckInterpreter(context.Background())

		assert.Equal(t, StatusPass, result.Status)
		assert.Equal(t, "Python 3.11.4", result.Message)
		assert.True(t, result.Required)
	})

	t.Run("missing", func(t *testing.T) {
		c := New(t.TempDir(), WithFinder(missingFinder()))
		result := c.CheckInterpreter(context.Background())

		assert.Equal(t, StatusFail, result.Status)
		assert.Contains(t, result.Message, "3.8")
		assert.Contains(t, result.Details, "python.org")
	})
}

func TestCheckSrcDir(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	result := c.CheckSrcDir()
	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "src")

	// A file named src is not a directory.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src"), nil, 0o644))
	result = c.CheckSrcDir()
	assert.Equal(t, StatusFail, result.Status)

	require.NoError(t, os.Remove(filepath.Join(dir, "src")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	result = c.CheckSrcDir()
	assert.Equal(t, StatusPass, result.Status)
}

func TestCheckEntryFile(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	result := c.CheckEntryFile()
	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, filepath.Join("src", "main.py"))

	scaffoldProject(t, dir)
	result = c.CheckEntryFile()
	assert.Equal(t, StatusPass, result.Status)
}

func TestCheckManifest(t *testing.T) {
	t.Run("required and missing is fatal", func(t *testing.T) {
		c := New(t.TempDir(), WithRequireManifest(true))
		result := c.CheckManifest()

		assert.Equal(t, StatusFail, result.Status)
		assert.True(t, result.Required)
		assert.True(t, result.IsCritical())
	})

	t.Run("optional and missing warns", func(t *testing.T) {
		c := New(t.TempDir())
		result := c.CheckManifest()

		assert.Equal(t, StatusWarn, result.Status)
		assert.False(t, result.IsCritical())
		assert.Contains(t, result.Details, "fallback")
	})

	t.Run("present passes", func(t *testing.T) {
		dir := t.TempDir()
		scaffoldProject(t, dir)
		c := New(dir, WithRequireManifest(true))

		result := c.CheckManifest()
		assert.Equal(t, StatusPass, result.Status)
	})
}

func TestCheckCredentials(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	result := c.CheckCredentials()
	assert.Equal(t, StatusWarn, result.Status)
	assert.False(t, result.Required)

	scaffoldProject(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "credentials.json"), []byte("{}"), 0o600))
	result = c.CheckCredentials()
	assert.Equal(t, StatusPass, result.Status)
}

func TestCheckEnvFile(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	t.Run("missing warns", func(t *testing.T) {
		result := c.CheckEnvFile()
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Details, "scaffold")
	})

	t.Run("placeholders warn", func(t *testing.T) {
		content := "SPREADSHEET_ID=your_spreadsheet_id_here\nSECRET_KEY=change_me_in_production\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))

		result := c.CheckEnvFile()
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Message, "placeholder")
	})

	t.Run("edited passes", func(t *testing.T) {
		content := "SPREADSHEET_ID=1AbC\nSECRET_KEY=s3cret\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))

		result := c.CheckEnvFile()
		assert.Equal(t, StatusPass, result.Status)
	})
}

func TestRunAll_OrderAndIdempotence(t *testing.T) {
	dir := t.TempDir()
	scaffoldProject(t, dir)
	c := New(dir, WithFinder(foundFinder()))

	first := c.RunAll(context.Background())
	second := c.RunAll(context.Background())

	// Fixed order.
	var names []string
	for _, r := range first {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"python_interpreter",
		"src_directory",
		"entry_point",
		"requirements_manifest",
		"credentials",
		"env_file",
		"write_permissions",
	}, names)

	// Re-running with no filesystem changes yields identical outcomes.
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Status, second[i].Status, first[i].Name)
	}
}

func TestRunAll_MissingInterpreterDoesNotMutate(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, WithFinder(missingFinder()))

	results := c.RunAll(context.Background())
	assert.True(t, c.HasCriticalFailures(results))

	// Nothing scaffolded by checks: no .env, no venv, no data dir.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummaryStatus(t *testing.T) {
	c := New(t.TempDir())

	tests := []struct {
		name     string
		results  []CheckResult
		expected string
	}{
		{"all pass", []CheckResult{{Status: StatusPass}}, "ready"},
		{"with warnings", []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}, "ready_with_warnings"},
		{"critical failure", []CheckResult{{Status: StatusFail, Required: true}}, "failed"},
		{"optional failure", []CheckResult{{Status: StatusFail, Required: false}}, "ready_with_warnings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.SummaryStatus(tt.results))
		})
	}
}

func TestPrintResults(t *testing.T) {
	results := []CheckResult{
		{Name: "python_interpreter", Status: StatusPass, Message: "Python 3.11.4"},
		{Name: "credentials", Status: StatusWarn, Message: "not found"},
		{Name: "src_directory", Status: StatusFail, Message: "missing", Required: true},
	}

	buf := &bytes.Buffer{}
	c := New(t.TempDir(), WithOutput(buf))
	c.PrintResults(results)

	out := buf.String()
	assert.Contains(t, out, "[PASS] python_interpreter")
	assert.Contains(t, out, "[WARN] credentials")
	assert.Contains(t, out, "[FAIL] src_directory")
	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "1 error(s):")
	assert.Contains(t, out, "1 warning(s):")
}

func TestCheckWritePermissions(t *testing.T) {
	c := New(t.TempDir())
	result := c.CheckWritePermissions()

	assert.Equal(t, StatusPass, result.Status)
	assert.True(t, result.Required)
}
