package store

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for Store operations.
const (
	ErrCodeNotFound            errors.ErrorCode = "STORE_NOT_FOUND"
	ErrCodePersistentRemoval   errors.ErrorCode = "STORE_PERSISTENT_REMOVAL"
	ErrCodeConcurrentlyRemoved errors.ErrorCode = "STORE_CONCURRENTLY_REMOVED"
)

const (
	msgNotFound            = "key not found in store"
	msgPersistentRemoval   = "entry has persistent policy and cannot be removed"
	msgConcurrentlyRemoved = "entry was removed by a concurrent writer"
)

// NewErrNotFound creates an error for a missing key.
func NewErrNotFound(key string) error {
	return errors.NewWithField(ErrCodeNotFound, msgNotFound, "key", key)
}

// NewErrPersistentRemoval creates an error for a rejected removal of a
// Persistent entry. The store emits a Retained event alongside this error.
func NewErrPersistentRemoval(key string) error {
	return errors.NewWithField(ErrCodePersistentRemoval, msgPersistentRemoval, "key", key)
}

// NewErrConcurrentlyRemoved creates an error for a remove that lost a race
// against another writer between the probe and the RCU removal.
func NewErrConcurrentlyRemoved(key string) error {
	return errors.NewWithField(ErrCodeConcurrentlyRemoved, msgConcurrentlyRemoved, "key", key)
}

// IsNotFound reports whether err is a "key not found" error.
func IsNotFound(err error) bool {
	return errors.HasCode(err, ErrCodeNotFound)
}

// IsPersistentRemoval reports whether err is a rejected-removal error.
func IsPersistentRemoval(err error) bool {
	return errors.HasCode(err, ErrCodePersistentRemoval)
}

// IsConcurrentlyRemoved reports whether err is a lost-race removal error.
func IsConcurrentlyRemoved(err error) bool {
	return errors.HasCode(err, ErrCodeConcurrentlyRemoved)
}

// ErrorCode extracts the structured error code carried by err, or "" if err
// is nil or does not carry one.
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
