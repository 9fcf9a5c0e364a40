package models

import (
	"errors"
	"fmt"
)

// ValidationError reports a structurally inconsistent snapshot.
type ValidationError struct {
	message string
}

// NewValidationError creates a new validation error
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return e.message
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConnectivityError reports that the snapshot provider cannot reach the
// cluster API. It is fatal to the requested operation.
type ConnectivityError struct {
	message string
	cause   error
}

// NewConnectivityError wraps an underlying transport failure.
func NewConnectivityError(message string, cause error) *ConnectivityError {
	return &ConnectivityError{message: message, cause: cause}
}

func (e *ConnectivityError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *ConnectivityError) Unwrap() error {
	return e.cause
}

// IsConnectivityError checks if an error is a connectivity error
func IsConnectivityError(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// PartialDataError reports that an optional data source (metrics server,
// autoscaler CRDs, GitOps CRDs) is unavailable. It is non-fatal: the
// provider recovers by degrading the snapshot's fidelity, not its correctness.
type PartialDataError struct {
	Source string
	cause  error
}

// NewPartialDataError records an unavailable optional source.
func NewPartialDataError(source string, cause error) *PartialDataError {
	return &PartialDataError{Source: source, cause: cause}
}

func (e *PartialDataError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s unavailable: %v", e.Source, e.cause)
	}
	return fmt.Sprintf("%s unavailable", e.Source)
}

func (e *PartialDataError) Unwrap() error {
	return e.cause
}

// IsPartialDataError checks if an error is a partial-data error
func IsPartialDataError(err error) bool {
	var pde *PartialDataError
	return errors.As(err, &pde)
}

// InvalidRequestError reports malformed request parameters: an unknown issue
// type, an unknown report format, or an identifier that fails validation.
// The message names the invalid field.
type InvalidRequestError struct {
	Field   string
	message string
}

// NewInvalidRequestError creates an invalid-request error for the named field.
func NewInvalidRequestError(field, format string, args ...interface{}) *InvalidRequestError {
	return &InvalidRequestError{
		Field:   field,
		message: fmt.Sprintf(format, args...),
	}
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.message)
}

// IsInvalidRequestError checks if an error is an invalid-request error
func IsInvalidRequestError(err error) bool {
	var ire *InvalidRequestError
	return errors.As(err, &ire)
}
