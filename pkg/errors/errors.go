// Package errors provides structured error types for mermaid-filter.
//
// Every error that crosses a package boundary carries a [Code]. The code
// decides how the filter reacts:
//
//   - RENDERER_MISSING, RENDERER_FAILED, INVALID_PARAMETER: the failure is
//     local to one diagram block, which falls back to a warning followed by
//     the original source block.
//   - FILESYSTEM, INVALID_DOCUMENT, INVALID_CONFIG: the whole conversion is
//     aborted.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "width %q is not a positive integer", v)
//	if errors.Is(err, errors.ErrCodeInvalidParameter) {
//	    // Fall back for this block only
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFilesystem, origErr, "create cache dir %s", dir)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-block failures
	ErrCodeRendererMissing  Code = "RENDERER_MISSING"
	ErrCodeRendererFailed   Code = "RENDERER_FAILED"
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"

	// Run-level failures
	ErrCodeFilesystem      Code = "FILESYSTEM"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Cache backend errors
	ErrCodeCache Code = "CACHE_ERROR"

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
// It unwraps the error chain looking for an *Error with a matching code.
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsBlockLocal reports whether err only affects a single diagram block.
// Block-local errors are recovered by falling back to the original block;
// anything else aborts the conversion.
func IsBlockLocal(err error) bool {
	switch GetCode(err) {
	case ErrCodeRendererMissing, ErrCodeRendererFailed, ErrCodeInvalidParameter:
		return true
	}
	return false
}
