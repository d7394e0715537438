// Package errors provides structured error types for the opckit surfaces.
//
// The opc engine itself reports failures through sentinel errors; this
// package wraps them at the CLI and API boundary with:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages stripped of internal detail
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - MALFORMED_*: Broken package containers
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPartName, "bad partname: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidPartName) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedPackage, origErr, "failed to open %s", path)
package errors

import (
	"errors"
	"fmt"

	"github.com/opckit/opckit/pkg/opc"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPartName Code = "INVALID_PART_NAME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Package graph errors
	ErrCodeMalformedPackage Code = "MALFORMED_PACKAGE"
	ErrCodeAmbiguousRelType Code = "AMBIGUOUS_RELTYPE"
	ErrCodeExternalTarget   Code = "EXTERNAL_TARGET"

	// Backend errors
	ErrCodeCache   Code = "CACHE_ERROR"
	ErrCodeCatalog Code = "CATALOG_ERROR"

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

// FromOPC classifies an opc engine error under the matching code, so CLI
// and API callers emit consistent codes without inspecting sentinels
// themselves. Unknown errors classify as internal.
func FromOPC(err error, format string, args ...any) *Error {
	code := ErrCodeInternal
	switch {
	case errors.Is(err, opc.ErrInvalidPartName):
		code = ErrCodeInvalidPartName
	case errors.Is(err, opc.ErrNotFound):
		code = ErrCodeNotFound
	case errors.Is(err, opc.ErrAmbiguous):
		code = ErrCodeAmbiguousRelType
	case errors.Is(err, opc.ErrExternalTarget):
		code = ErrCodeExternalTarget
	case errors.Is(err, opc.ErrMalformedPackage):
		code = ErrCodeMalformedPackage
	}
	return Wrap(code, err, format, args...)
}
