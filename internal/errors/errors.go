package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig = "CONFIG"
	ErrSSH    = "SSH"
	ErrExport = "EXPORT"
	ErrDoctor = "DOCTOR"

	// Data source failures
	ErrSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrSourceFailed      = "SOURCE_FAILED"

	// Pipeline failures
	ErrNoData        = "NO_DATA"
	ErrNoNumeric     = "NO_NUMERIC"
	ErrMalformedTime = "MALFORMED_TIME"

	// ErrRender marks a transient painting fault. It is the only code the
	// live loop recovers from.
	ErrRender = "RENDER"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrSourceFailed code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSourceFailed,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var scErr *Error
	if errors.As(err, &scErr) {
		return scErr.Code == code
	}
	return false
}

// IsTransient reports whether err is a fault the live loop may retry.
func IsTransient(err error) bool {
	return IsCode(err, ErrRender)
}
