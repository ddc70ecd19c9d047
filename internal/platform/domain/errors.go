package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the business error taxonomy. Application and repository
// code wraps these into a DomainError so handlers can map them to HTTP codes.
var (
	ErrNotFound                = errors.New("not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrConflict                = errors.New("conflict")
	ErrValidation              = errors.New("validation failed")
	ErrInvalidConfiguration    = errors.New("invalid configuration")
	ErrInvalidStartTime        = errors.New("invalid start time")
	ErrDuplicateSubscription   = errors.New("duplicate subscription")
	ErrPaymentFailed           = errors.New("payment failed")
	ErrAutoRenewalDisabled     = errors.New("auto-renewal disabled")
	ErrSubscriptionStillActive = errors.New("subscription still active")
	ErrInactiveSubscription    = errors.New("inactive subscription")
)

// DomainError is a business error with a classification sentinel in Err.
type DomainError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the sentinel for errors.Is checks.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that an entity could not be located.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Err: ErrNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewUnauthorizedError reports that the caller does not own the targeted record.
func NewUnauthorizedError(msg string) *DomainError {
	return &DomainError{Err: ErrUnauthorized, Message: msg}
}

// NewConflictError reports a concurrent-modification or uniqueness conflict.
func NewConflictError(msg string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: msg}
}

// NewValidationError reports invalid caller-supplied input.
func NewValidationError(msg string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: msg}
}

// NewInvalidConfigurationError reports unsupported provider pricing settings.
func NewInvalidConfigurationError(msg string) *DomainError {
	return &DomainError{Err: ErrInvalidConfiguration, Message: msg}
}

// NewInvalidStartTimeError reports a requested start that precedes the current time.
func NewInvalidStartTimeError(msg string) *DomainError {
	return &DomainError{Err: ErrInvalidStartTime, Message: msg}
}

// NewDuplicateSubscriptionError reports that a (provider, subscriber) record already exists.
func NewDuplicateSubscriptionError(msg string) *DomainError {
	return &DomainError{Err: ErrDuplicateSubscription, Message: msg}
}

// NewPaymentFailedError reports that the payment gateway declined or errored.
func NewPaymentFailedError(msg string) *DomainError {
	return &DomainError{Err: ErrPaymentFailed, Message: msg}
}

// NewAutoRenewalDisabledError reports a renewal attempt while the flag is off.
func NewAutoRenewalDisabledError(msg string) *DomainError {
	return &DomainError{Err: ErrAutoRenewalDisabled, Message: msg}
}

// NewSubscriptionStillActiveError reports a renewal attempt before the window elapsed.
func NewSubscriptionStillActiveError(msg string) *DomainError {
	return &DomainError{Err: ErrSubscriptionStillActive, Message: msg}
}

// NewInactiveSubscriptionError reports an access check outside the active window.
func NewInactiveSubscriptionError(msg string) *DomainError {
	return &DomainError{Err: ErrInactiveSubscription, Message: msg}
}
