package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodePythonNotFound, CategoryInterpreter, SeverityFatal},
		{ErrCodeSrcMissing, CategoryProject, SeverityFatal},
		{ErrCodeCredentialsDeclined, CategoryOperator, SeverityError},
		{ErrCodeVenvCreate, CategoryEnvironment, SeverityFatal},
		{ErrCodePipInstall, CategoryEnvironment, SeverityError},
		{ErrCodeAppExit, CategoryApp, SeverityError},
		{ErrCodeAlreadyRunning, CategoryApp, SeverityFatal},
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestLaunchError_ErrorFormat(t *testing.T) {
	err := New(ErrCodeEntryMissing, "src/main.py not found", nil)
	assert.Equal(t, "[ERR_202_ENTRY_MISSING] src/main.py not found", err.Error())
}

func TestLaunchError_Unwrap(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := Wrap(ErrCodePipInstall, cause)

	require.NotNil(t, err)
	assert.True(t, stderrors.Is(err, cause))
}

func TestLaunchError_IsByCode(t *testing.T) {
	a := New(ErrCodePythonNotFound, "no python", nil)
	b := New(ErrCodePythonNotFound, "different message", nil)
	c := New(ErrCodeAppExit, "app failed", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestMissingPath(t *testing.T) {
	err := MissingPath(ErrCodeSrcMissing, "src")

	assert.Contains(t, err.Message, "src")
	assert.Equal(t, "src", err.Details["path"])
	assert.True(t, IsFatal(err))
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeManifestMissing, "requirements.txt not found", nil).
		WithDetail("path", "requirements.txt").
		WithSuggestion("create requirements.txt or use the lenient profile")

	assert.Equal(t, "requirements.txt", err.Details["path"])
	assert.NotEmpty(t, err.Suggestion)
}

func TestIsFatal_PlainError(t *testing.T) {
	assert.False(t, IsFatal(fmt.Errorf("plain")))
	assert.False(t, IsFatal(nil))
}

func TestGetCodeAndCategory(t *testing.T) {
	err := New(ErrCodeAppExit, "exit 1", nil)

	assert.Equal(t, ErrCodeAppExit, GetCode(err))
	assert.Equal(t, CategoryApp, GetCategory(err))
	assert.Empty(t, GetCode(fmt.Errorf("plain")))
}

func TestFormatForCLI(t *testing.T) {
	err := New(ErrCodePythonNotFound, "python 3 not found on PATH", nil).
		WithSuggestion("install Python 3.8+ from https://www.python.org/downloads/")

	out := FormatForCLI(err)
	assert.Contains(t, out, "Error: python 3 not found on PATH")
	assert.Contains(t, out, "Hint: install Python 3.8+")
	assert.Contains(t, out, "Code: ERR_101_PYTHON_NOT_FOUND")
}

func TestFormatForCLI_PlainErrorWrapped(t *testing.T) {
	out := FormatForCLI(fmt.Errorf("boom"))
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatForLog(t *testing.T) {
	cause := stderrors.New("exec: not found")
	err := Wrap(ErrCodePythonNotFound, cause).WithDetail("searched", "python3, python, py")

	attrs := FormatForLog(err)
	assert.Equal(t, ErrCodePythonNotFound, attrs["error_code"])
	assert.Equal(t, string(CategoryInterpreter), attrs["category"])
	assert.Equal(t, "exec: not found", attrs["cause"])
	assert.Equal(t, "python3, python, py", attrs["detail_searched"])
}
