// Package errors provides a lightweight structured error type (BuildError)
// for category-based classification of compile failures in the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a texbuild error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"
	CategoryInput  ErrorCategory = "input"

	// External compiler errors
	CategoryTool    ErrorCategory = "tool"
	CategoryProcess ErrorCategory = "process"
	CategoryCompile ErrorCategory = "compile"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// BuildError is a structured error with category, severity, and context
type BuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts a BuildError from anywhere in err's chain.
func As(err error) (*BuildError, bool) {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BuildError
func GetCategory(err error) ErrorCategory {
	if be, ok := As(err); ok {
		return be.Category
	}
	return CategoryInternal
}
