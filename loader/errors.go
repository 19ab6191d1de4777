package loader

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for Loader operations.
const (
	ErrCodeNotFound          errors.ErrorCode = "LOADER_NOT_FOUND"
	ErrCodeIO                errors.ErrorCode = "LOADER_IO"
	ErrCodeSandboxViolation  errors.ErrorCode = "LOADER_SANDBOX_VIOLATION"
	ErrCodeParseError        errors.ErrorCode = "LOADER_PARSE_ERROR"
	ErrCodeValidationError   errors.ErrorCode = "LOADER_VALIDATION_ERROR"
)

const (
	msgNotFound         = "resource not found"
	msgSandboxViolation = "resolved path escapes the source's sandbox root"
)

// NewErrNotFound creates an error for a missing resource.
func NewErrNotFound(key string) error {
	return errors.NewWithField(ErrCodeNotFound, msgNotFound, "key", key)
}

// NewErrIO wraps an I/O failure other than "not found".
func NewErrIO(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeIO, "source I/O error").WithContext("key", key)
}

// NewErrSandboxViolation creates an error for a FileSource resolution that
// escaped its root.
func NewErrSandboxViolation(key string) error {
	return errors.NewWithField(ErrCodeSandboxViolation, msgSandboxViolation, "key", key)
}

// NewErrParse wraps a decoder failure.
func NewErrParse(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeParseError, "failed to parse configuration").WithContext("key", key)
}

// NewErrValidation wraps a failure from the optional Validator hook.
func NewErrValidation(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeValidationError, "configuration failed validation").WithContext("key", key)
}

// IsNotFound reports whether err denotes a missing resource.
func IsNotFound(err error) bool { return errors.HasCode(err, ErrCodeNotFound) }

// IsSandboxViolation reports whether err denotes a rejected path escape.
func IsSandboxViolation(err error) bool { return errors.HasCode(err, ErrCodeSandboxViolation) }

// IsParseError reports whether err came from a Format's Parse.
func IsParseError(err error) bool { return errors.HasCode(err, ErrCodeParseError) }

// IsValidationError reports whether err came from the Validator hook.
func IsValidationError(err error) bool { return errors.HasCode(err, ErrCodeValidationError) }

// ErrorCode extracts the structured error code carried by err, if any.
func ErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
