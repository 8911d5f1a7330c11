package shared

import "errors"

// ErrorKind classifies a DomainError into one of the failure categories
// surfaced to callers. Every kind except KindConcurrency is terminal for the
// invocation; concurrency conflicts are safe to retry.
type ErrorKind string

const (
	// KindNotFound indicates the requested resource does not exist
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindValidation indicates a business rule violation in the input
	KindValidation ErrorKind = "VALIDATION"
	// KindConflict indicates a uniqueness collision with existing state
	KindConflict ErrorKind = "CONFLICT"
	// KindConcurrency indicates lock or version contention (retryable)
	KindConcurrency ErrorKind = "CONCURRENCY"
	// KindSystem indicates a storage or infrastructure failure
	KindSystem ErrorKind = "SYSTEM"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is allows errors.Is comparisons against the sentinel errors below:
// two domain errors match when kind and code match.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation-kind domain error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// NewConflictError creates a conflict-kind domain error
func NewConflictError(code, message string) *DomainError {
	return NewDomainError(KindConflict, code, message)
}

// NewNotFoundError creates a not-found-kind domain error
func NewNotFoundError(code, message string) *DomainError {
	return NewDomainError(KindNotFound, code, message)
}

// NewConcurrencyError creates a concurrency-kind domain error
func NewConcurrencyError(code, message string) *DomainError {
	return NewDomainError(KindConcurrency, code, message)
}

// NewSystemError creates a system-kind domain error
func NewSystemError(code, message string) *DomainError {
	return NewDomainError(KindSystem, code, message)
}

// Common domain errors
var (
	ErrNotFound            = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConcurrencyError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// IsKind reports whether err is a DomainError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Kind == kind
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsValidation reports whether err is a validation domain error
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsConflict reports whether err is a conflict domain error
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// IsConcurrencyConflict reports whether err is a retryable concurrency error
func IsConcurrencyConflict(err error) bool { return IsKind(err, KindConcurrency) }
