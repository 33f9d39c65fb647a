// Package errors provides structured error types for cargo-cite.
//
// Every failure the tool can observe is tagged with a [Code] so callers can
// decide whether it ends the run or only skips one file:
//
//   - DIRECTORY_NOT_FOUND: fatal, the run stops before discovery
//   - FILE_*, MANIFEST_PARSE, DESTINATION_EXISTS: per manifest, converted to a skip
//   - TRAVERSAL_ENTRY: per directory entry, the entry is left out of discovery
//   - REGISTRY_LOOKUP: per dependency, enrichment is silently omitted
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeManifestParse, cause, "invalid Cargo.toml at %s", path)
//	if errors.Is(err, errors.ErrCodeManifestParse) {
//	    // skip the manifest
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Run-level errors
	ErrCodeDirectoryNotFound Code = "DIRECTORY_NOT_FOUND"

	// Per-file errors
	ErrCodeFileOpen          Code = "FILE_OPEN"
	ErrCodeFileRead          Code = "FILE_READ"
	ErrCodeFileWrite         Code = "FILE_WRITE"
	ErrCodeManifestParse     Code = "MANIFEST_PARSE"
	ErrCodeDestinationExists Code = "DESTINATION_EXISTS"

	// Discovery errors
	ErrCodeTraversalEntry Code = "TRAVERSAL_ENTRY"

	// Registry errors
	ErrCodeRegistryLookup Code = "REGISTRY_LOOKUP"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
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
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsSkip reports whether err is a per-file failure that should be converted
// into a skipped manifest rather than ending the run.
func IsSkip(err error) bool {
	switch GetCode(err) {
	case ErrCodeFileOpen, ErrCodeFileRead, ErrCodeFileWrite,
		ErrCodeManifestParse, ErrCodeDestinationExists:
		return true
	}
	return false
}
