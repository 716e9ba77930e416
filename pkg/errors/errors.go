// Package errors provides structured error types for searchviz.
//
// Library packages return an [*Error] at their boundaries so the CLI can
// print a short message and the HTTP server can pick a status code without
// parsing strings. Inside a package, plain fmt.Errorf wrapping is fine.
//
// # Error Codes
//
//   - INVALID_* / MALFORMED_*: bad input, HTTP 400
//   - *NOT_FOUND: missing file, node or run, HTTP 404
//   - INTERNAL_ERROR / UNSUPPORTED: HTTP 500 and 501
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedGraph, "edge %d-%d out of range", a, b)
//	if errors.Is(err, errors.ErrCodeMalformedGraph) {
//	    // Handle construction error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidKML, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidNode      Code = "INVALID_NODE"
	ErrCodeInvalidKML       Code = "INVALID_KML"
	ErrCodeInvalidViewport  Code = "INVALID_VIEWPORT"
	ErrCodeMalformedGraph   Code = "MALFORMED_GRAPH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRunNotFound  Code = "RUN_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// HTTPStatus maps a code to the status the server answers with.
func (c Code) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidAlgorithm,
		ErrCodeInvalidNode, ErrCodeInvalidKML, ErrCodeInvalidViewport, ErrCodeMalformedGraph:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeRunNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// Error carries a Code next to the message shown to users. Cause may be nil.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

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

// Is reports whether the first *Error in err's chain carries code.
func Is(err error, code Code) bool { return GetCode(err) == code && code != "" }

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the error without code prefixes, for printing.
// Causes are kept: "read roads.kml: open roads.kml: no such file or directory".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
