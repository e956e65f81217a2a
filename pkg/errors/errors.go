// Package errors provides structured error types for the stockcards tool.
//
// The core packages (normalize, group, paginate, render views) never fail:
// malformed cells resolve to fallback values. Errors only arise at the
// boundary, when configuration is wrong, a source cannot be fetched, or a
// page cannot be rendered. This package gives those failures a
// machine-readable [Code] so the CLI can print a short message and tests can
// assert the category.
//
// # Error Codes
//
//   - INVALID_*: configuration or flag values that fail validation
//   - MISSING_CREDENTIALS: a token or credentials file is not configured
//   - SOURCE_FETCH, NETWORK_ERROR, RATE_LIMITED, UNAUTHORIZED, NOT_FOUND:
//     failures talking to a row source
//   - TEMPLATE, RENDER: failures turning pages into HTML or PNG
//   - NO_DATA: a source returned no usable rows
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingCredentials, "AIRTABLE_TOKEN is not set")
//	if errors.Is(err, errors.ErrCodeMissingCredentials) {
//	    // Explain how to configure the token
//	}
//
//	err := errors.Wrap(errors.ErrCodeSourceFetch, origErr, "fetch sheet %s", id)
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
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidDate   Code = "INVALID_DATE"
	ErrCodeInvalidID     Code = "INVALID_ID"

	// Credential errors
	ErrCodeMissingCredentials Code = "MISSING_CREDENTIALS"
	ErrCodeUnauthorized       Code = "UNAUTHORIZED"

	// Source errors
	ErrCodeSourceFetch Code = "SOURCE_FETCH"
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeNoData      Code = "NO_DATA"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Output errors
	ErrCodeTemplate Code = "TEMPLATE"
	ErrCodeRender   Code = "RENDER"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// A [*RateLimitedError] matches ErrCodeRateLimited.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
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

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
