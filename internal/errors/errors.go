// Package errors provides standardized error handling for zbind.
// It defines the application's error kinds, typed errors for parse,
// decode, and aggregation failures, and helper functions for consistent
// error creation, wrapping, and checking.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Parse error kinds
	MalformedLine
	UnbalancedQuote
	UnknownFlag
	// Decode error kinds
	UnknownEscape
	// Aggregation error kinds
	InvalidMode
	// Config error kinds
	InvalidConfig
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ParseError represents a listing line that does not match the bindkey
// directive grammar. It carries the line number and raw text so callers
// can report partial results.
type ParseError struct {
	ApplicationError
	line int
	raw  string
}

// NewParseError creates a new parse error for one listing line
func NewParseError(msg string, line int, raw string, kind ErrorKind, err error) *ParseError {
	return &ParseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		line: line,
		raw:  raw,
	}
}

// Error returns the parse error message
func (e *ParseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("line %d: %s: %v: %q", e.line, e.msg, e.err, e.raw)
	}
	return fmt.Sprintf("line %d: %s: %q", e.line, e.msg, e.raw)
}

// Line returns the 1-based line number associated with the error
func (e *ParseError) Line() int {
	return e.line
}

// Raw returns the raw listing line associated with the error
func (e *ParseError) Raw() string {
	return e.raw
}

// EscapeError represents an escape form inside a key or macro literal
// that the decoder does not recognize.
type EscapeError struct {
	ApplicationError
	sequence string
}

// NewEscapeError creates a new escape error
func NewEscapeError(msg string, sequence string, err error) *EscapeError {
	return &EscapeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: UnknownEscape,
		},
		sequence: sequence,
	}
}

// Error returns the escape error message
func (e *EscapeError) Error() string {
	if e.sequence != "" {
		return fmt.Sprintf("%s: %q", e.msg, e.sequence)
	}
	return e.ApplicationError.Error()
}

// Sequence returns the offending escape substring
func (e *EscapeError) Sequence() string {
	return e.sequence
}

// ModeError represents an unrecognized sort/group mode. Unlike parse and
// escape errors it is a configuration error, fatal to the aggregation call.
type ModeError struct {
	ApplicationError
	mode string
}

// NewModeError creates a new mode error
func NewModeError(msg string, mode string) *ModeError {
	return &ModeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: InvalidMode,
		},
		mode: mode,
	}
}

// Error returns the mode error message
func (e *ModeError) Error() string {
	if e.mode != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.mode)
	}
	return e.ApplicationError.Error()
}

// Mode returns the requested mode associated with the error
func (e *ModeError) Mode() string {
	return e.mode
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsMalformedLine checks if the error is a malformed listing line error
func IsMalformedLine(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsUnknownEscape checks if the error is an unknown escape error
func IsUnknownEscape(err error) bool {
	var escErr *EscapeError
	if errors.As(err, &escErr) {
		return escErr.Kind() == UnknownEscape
	}
	return false
}

// IsInvalidMode checks if the error is an invalid mode error
func IsInvalidMode(err error) bool {
	var modeErr *ModeError
	if errors.As(err, &modeErr) {
		return modeErr.Kind() == InvalidMode
	}
	return false
}
