// Package errors provides structured error handling for paylaunch.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Interpreter errors
//   - 2XX: Project layout errors (missing files)
//   - 3XX: Operator/credentials errors
//   - 4XX: Environment preparation errors (venv, pip)
//   - 5XX: Application handoff errors
//   - 6XX: Configuration errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryInterpreter indicates Python interpreter discovery errors.
	CategoryInterpreter Category = "INTERPRETER"
	// CategoryProject indicates missing required project files.
	CategoryProject Category = "PROJECT"
	// CategoryOperator indicates errors caused by operator choices.
	CategoryOperator Category = "OPERATOR"
	// CategoryEnvironment indicates venv/dependency preparation errors.
	CategoryEnvironment Category = "ENVIRONMENT"
	// CategoryApp indicates failures of the launched application.
	CategoryApp Category = "APP"
	// CategoryConfig indicates launcher configuration errors.
	CategoryConfig Category = "CONFIG"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Interpreter errors (100-199)
	ErrCodePythonNotFound = "ERR_101_PYTHON_NOT_FOUND"
	ErrCodePythonTooOld   = "ERR_102_PYTHON_TOO_OLD"

	// Project layout errors (200-299)
	ErrCodeSrcMissing      = "ERR_201_SRC_MISSING"
	ErrCodeEntryMissing    = "ERR_202_ENTRY_MISSING"
	ErrCodeManifestMissing = "ERR_203_MANIFEST_MISSING"

	// Operator errors (300-399)
	ErrCodeCredentialsDeclined = "ERR_301_CREDENTIALS_DECLINED"

	// Environment errors (400-499)
	ErrCodeVenvCreate = "ERR_401_VENV_CREATE"
	ErrCodePipInstall = "ERR_402_PIP_INSTALL"

	// Handoff errors (500-599)
	ErrCodeAppExit        = "ERR_501_APP_EXIT"
	ErrCodeAlreadyRunning = "ERR_502_ALREADY_RUNNING"
	ErrCodeAppSpawn       = "ERR_503_APP_SPAWN"

	// Config errors (600-699)
	ErrCodeConfigInvalid = "ERR_601_CONFIG_INVALID"

	// Internal errors (900-999)
	ErrCodeInternal = "ERR_901_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "101" from "ERR_101_PYTHON_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryInterpreter
	case '2':
		return CategoryProject
	case '3':
		return CategoryOperator
	case '4':
		return CategoryEnvironment
	case '5':
		return CategoryApp
	case '6':
		return CategoryConfig
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodePythonNotFound, ErrCodeSrcMissing, ErrCodeEntryMissing,
		ErrCodeVenvCreate, ErrCodeAlreadyRunning:
		return SeverityFatal
	case ErrCodePipInstall:
		// Fatal or not is a profile decision; the pipeline decides.
		return SeverityError
	default:
		return SeverityError
	}
}
