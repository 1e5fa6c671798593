// Package errors provides error types and handling for pinning service operations.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a pinning operation error with context about the
// operation that failed. It wraps the underlying error with additional
// context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "pinFiles", "unpin")
	Op string

	// Key is the destination name or CID involved (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("pinata.%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("pinata.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithKey adds destination name or CID context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// Sentinel errors for common pinning operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrMissingCredentials indicates that the API key pair is absent or incomplete
	ErrMissingCredentials = errors.New("pinata: missing credentials")

	// ErrInvalidCredentials indicates that the service rejected the key pair
	ErrInvalidCredentials = errors.New("pinata: invalid credentials")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("pinata: invalid input")

	// ErrInvalidPartName indicates that a destination name is invalid
	ErrInvalidPartName = errors.New("pinata: invalid part name")

	// ErrNotFound indicates that the referenced pin does not exist
	ErrNotFound = errors.New("pinata: pin not found")

	// ErrUnexpectedStatus indicates that the service returned a non-success status
	ErrUnexpectedStatus = errors.New("pinata: unexpected status")

	// ErrConnection indicates a transport-level failure
	ErrConnection = errors.New("pinata: connection error")
)

// FromStatus maps an HTTP status code to the matching sentinel error.
// Success statuses map to nil.
func FromStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrInvalidCredentials, status)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrNotFound, status)
	default:
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, status)
	}
}

// IsMissingCredentials checks if an error indicates absent credentials.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsMissingCredentials(err error) bool {
	return errors.Is(err, ErrMissingCredentials)
}

// IsInvalidCredentials checks if an error indicates rejected credentials.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound checks if an error indicates a missing pin.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
