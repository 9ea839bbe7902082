// Package errors provides structured error types for rbcheck.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Verification failures have one code per top-level outcome (NO_ROOT,
// ROOT_NOT_BLACK, NOT_A_VALID_TREE, BLACK_HEIGHT_VIOLATION). The finer
// diagnostics stay on the verification state, not in the code.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateLabel, "label %d is already in the tree", 7)
//	if errors.Is(err, errors.ErrCodeDuplicateLabel) {
//	    // Handle duplicate
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLabel  Code = "INVALID_LABEL"
	ErrCodeInvalidID     Code = "INVALID_ID"

	// Canvas errors
	ErrCodeUnknownNode Code = "UNKNOWN_NODE"
	ErrCodeUnknownEdge Code = "UNKNOWN_EDGE"

	// Verification outcomes
	ErrCodeNoRoot               Code = "NO_ROOT"
	ErrCodeRootNotBlack         Code = "ROOT_NOT_BLACK"
	ErrCodeNotAValidTree        Code = "NOT_A_VALID_TREE"
	ErrCodeBlackHeightViolation Code = "BLACK_HEIGHT_VIOLATION"

	// Insertion errors
	ErrCodeDuplicateLabel Code = "DUPLICATE_LABEL"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// HTTPStatus maps an error code to the HTTP status the API answers with.
// Unknown codes and plain errors map to 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidLabel, ErrCodeInvalidID:
		return 400
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeUnknownNode, ErrCodeUnknownEdge:
		return 404
	case ErrCodeDuplicateLabel:
		return 409
	case ErrCodeNoRoot, ErrCodeRootNotBlack, ErrCodeNotAValidTree, ErrCodeBlackHeightViolation:
		return 422
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
