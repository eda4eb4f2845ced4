package errors

import (
	"fmt"
)

// LaunchError is the structured error type for paylaunch.
// It provides rich context for error handling, logging, and user presentation.
type LaunchError struct {
	// Code is the unique error code (e.g., "ERR_101_PYTHON_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Interpreter, Project, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the operator.
	Suggestion string
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with LaunchError.
func (e *LaunchError) Is(target error) bool {
	if t, ok := target.(*LaunchError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *LaunchError) WithDetail(key, value string) *LaunchError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the operator.
// Returns the error for method chaining.
func (e *LaunchError) WithSuggestion(suggestion string) *LaunchError {
	e.Suggestion = suggestion
	return e
}

// New creates a new LaunchError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *LaunchError {
	return &LaunchError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a LaunchError from an existing error.
// The error's message becomes the LaunchError message.
func Wrap(code string, err error) *LaunchError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// MissingPath creates a project-layout error naming the exact missing path.
func MissingPath(code string, path string) *LaunchError {
	return New(code, fmt.Sprintf("required path not found: %s", path), nil).
		WithDetail("path", path)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the launch pipeline.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if le, ok := err.(*LaunchError); ok {
		return le.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a LaunchError.
// Returns empty string if not a LaunchError.
func GetCode(err error) string {
	if le, ok := err.(*LaunchError); ok {
		return le.Code
	}
	return ""
}

// GetCategory extracts the category from a LaunchError.
// Returns empty string if not a LaunchError.
func GetCategory(err error) Category {
	if le, ok := err.(*LaunchError); ok {
		return le.Category
	}
	return ""
}
