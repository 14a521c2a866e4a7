// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, thresholds, mismatched lengths
//   - Data/Resource errors (200-299): Missing files, missing columns, unordered time keys
//   - Indicator errors (300-399): Technical indicator calculation and lookup errors
//   - Strategy errors (400-499): Strategy configuration and signal generation errors
//   - Backtest errors (600-699): Backtest engine configuration and result writing errors
//   - Callback errors (800-899): Lifecycle callback failures
//
// Numeric degeneracy inside a simulation (division by zero, empty ledgers) is never
// reported through this package: it shows up as NaN values in the ledger and metrics.
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeMissingColumn, "column %s not found", name)
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to read market data", cause)
//	if errors.HasCode(err, errors.ErrCodeMissingColumn) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsConfigurationError reports whether err was raised while preparing a run,
// before any simulation started: bad parameters, missing columns or unordered data.
func IsConfigurationError(err error) bool {
	code := GetCode(err)

	return (code >= 100 && code < 300) || code == ErrCodeStrategyConfigError || code == ErrCodeBacktestConfigError
}

// ColumnError reports a required price column that is absent from a data file.
type ColumnError struct {
	Column string // Column the loader expected
	Path   string // Data file that was inspected
}

// NewColumnError creates a ColumnError wrapped in an ErrCodeMissingColumn Error.
func NewColumnError(column, path string) *Error {
	return Wrap(ErrCodeMissingColumn, "required price column is missing", &ColumnError{
		Column: column,
		Path:   path,
	})
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s", e.Column, e.Path)
}

// IsColumnError checks if an error chain contains a ColumnError.
func IsColumnError(err error) bool {
	var columnErr *ColumnError

	return errors.As(err, &columnErr)
}
