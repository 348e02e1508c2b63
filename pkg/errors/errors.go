// Package errors provides structured error types for mandev.
//
// Every failure that crosses a package boundary carries a [Code] so that the
// HTTP dispatcher and the CLI can map it to a status or exit message without
// string matching:
//   - INVALID_*: input validation failures (usernames, profile files, formats)
//   - NOT_FOUND: the profile store has no document for a username
//   - UNAVAILABLE / TIMEOUT: the profile store could not be reached
//   - RASTERIZE_FAILED: SVG to PNG conversion failed
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidUsername, "invalid username: %q", name)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // render the not-found variant
//	}
//
//	err := errors.Wrap(errors.ErrCodeUnavailable, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidUsername Code = "INVALID_USERNAME"
	ErrCodeInvalidProfile  Code = "INVALID_PROFILE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Profile store errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnavailable Code = "UNAVAILABLE"
	ErrCodeTimeout     Code = "TIMEOUT"

	// Rendering errors
	ErrCodeRasterize Code = "RASTERIZE_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted, so a wrapper can
// reclassify an inner failure.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsUpstream reports whether err means the profile store could not answer.
func IsUpstream(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnavailable, ErrCodeTimeout:
		return true
	}
	return false
}
