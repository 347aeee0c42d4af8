package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInsufficientFunds indicates a wallet debit was refused because the
// requested amount exceeds the current balance. No state is changed.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// ErrInvalidStateTransition indicates a payment state-machine operation was
// attempted from the wrong status. The operation is a no-op.
var ErrInvalidStateTransition = errors.New("invalid payment state transition")

// ErrAllocationConflict indicates two approvals raced for the same receipt
// slot and the bounded retry was exhausted. The operation is retryable.
var ErrAllocationConflict = errors.New("receipt number allocation conflict")

// ErrExternalRedirectUnavailable indicates no UPI launch strategy could be
// built; callers should fall back to the manual-instructions payload.
var ErrExternalRedirectUnavailable = errors.New("external payment redirect unavailable")

// AppError carries an HTTP-ish status code alongside a message and the
// wrapped cause. Repositories use it to surface infrastructure failures
// without leaking raw driver errors to handlers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
