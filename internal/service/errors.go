package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrStudysetNotFound indicates that the studyset does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrStudysetNotFound = errors.New("studyset not found")

	// ErrInvalidPrompt indicates an empty or otherwise unusable prompt.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidPrompt = errors.New("invalid prompt")

	// ErrInvalidUserName indicates an empty user name.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidUserName = errors.New("invalid user name")

	// ErrSchedulingFailed indicates the studyset was recorded but its
	// generation could not be queued. The studyset is marked failed.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrSchedulingFailed = errors.New("generation could not be scheduled")
)

// ServiceError wraps an unexpected failure with the service and operation
// in which it happened.
type ServiceError struct {
	// Service is the service name (e.g., "studyset", "user")
	Service string
	// Operation is the operation that failed (e.g., "create_studyset")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	prefix := fmt.Sprintf("%s service %s failed", e.Service, e.Operation)
	if e.Message != "" {
		prefix += ": " + e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return prefix
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError maps store and domain errors to service sentinels and wraps
// everything else in a ServiceError.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrStudysetNotFound), errors.Is(err, store.ErrStudysetNotFound):
		return ErrStudysetNotFound
	case errors.Is(err, ErrInvalidPrompt), errors.Is(err, domain.ErrEmptyPrompt):
		return ErrInvalidPrompt
	case errors.Is(err, ErrInvalidUserName), errors.Is(err, domain.ErrEmptyUserName):
		return ErrInvalidUserName
	case errors.Is(err, ErrSchedulingFailed):
		return err
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
