package storage

import (
	"errors"
	"fmt"
)

// StorageError is an error with a stable, structured error code.
type StorageError struct {
	Code    string // Error code (e.g., "PS-KEY-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a StorageError with the same code.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewStorageError creates a new StorageError with the given code and message.
func NewStorageError(code, message string) *StorageError {
	return &StorageError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *StorageError) WithDetails(details string) *StorageError {
	return &StorageError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *StorageError) WithCause(cause error) *StorageError {
	return &StorageError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ErrorCode extracts the error code from err if it is a StorageError.
func ErrorCode(err error) string {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// Key errors.
var (
	// ErrEmptyKey indicates the key is empty.
	ErrEmptyKey = NewStorageError("PS-KEY-4000", "the key provided can not be empty")

	// ErrReservedKey indicates the key collides with a cookie attribute name.
	ErrReservedKey = NewStorageError("PS-KEY-4001", "the key is a reserved word, therefore not allowed")
)

// Mechanism errors.
var (
	// ErrInvalidMechanism indicates the storage mechanism kind is unknown.
	ErrInvalidMechanism = NewStorageError("PS-MECH-4000", "storage type is not valid")

	// ErrMechanismUnavailable indicates the requested mechanism failed its
	// availability probe. It is only ever logged; callers get a fallback.
	ErrMechanismUnavailable = NewStorageError("PS-MECH-5030", "storage mechanism is not available")
)

// Backing store errors.
var (
	// ErrStorageDisabled indicates the backing store refuses all access.
	ErrStorageDisabled = NewStorageError("PS-STOR-5031", "storage is disabled")

	// ErrQuotaExceeded indicates a write would exceed the store quota.
	ErrQuotaExceeded = NewStorageError("PS-STOR-5070", "storage quota exceeded")

	// ErrCookiesDisabled indicates the document does not accept cookies.
	ErrCookiesDisabled = NewStorageError("PS-COOK-5031", "cookies are disabled")

	// ErrSerialize indicates a value could not be serialized to its wire string.
	ErrSerialize = NewStorageError("PS-CODEC-4000", "value can not be serialized")
)
