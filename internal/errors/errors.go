package errors

import (
	"errors"
	"fmt"
)

// AppError is a structured application error with a stable code the
// HTTP and CLI surfaces can branch on.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving the code of a
// wrapped AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	var appErr *AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code, or "UNKNOWN" for foreign errors.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes.
const (
	CodeInvalidSelection  = "INVALID_SELECTION"
	CodeIncompatibleChart = "INCOMPATIBLE_CHART"
	CodeUnknownChart      = "UNKNOWN_CHART"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeDatasetError      = "DATASET_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// InvalidSelection marks a selection with the wrong arity or a column
// reference absent from the dataset.
func InvalidSelection(message string) *AppError {
	return New(CodeInvalidSelection, message)
}

// IncompatibleChart marks a chart choice the registry rejects for the
// selected columns.
func IncompatibleChart(message string) *AppError {
	return New(CodeIncompatibleChart, message)
}

// UnknownChart marks a chart identifier absent from the registry.
func UnknownChart(name string) *AppError {
	return New(CodeUnknownChart, fmt.Sprintf("unknown chart type %q", name))
}

// UnsupportedFormat marks a dataset file format the loaders cannot read.
func UnsupportedFormat(ext string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file extension %q", ext))
}

// DatasetError marks a failure while reading a dataset source.
func DatasetError(message string) *AppError {
	return New(CodeDatasetError, message)
}

// NotFound marks a missing resource.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// ConfigInvalid marks an invalid configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput marks malformed caller input.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
