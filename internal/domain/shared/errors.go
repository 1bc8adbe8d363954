package shared

import "fmt"

// DomainError represents a domain-level error with a stable machine-readable code
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound                  = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists             = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput              = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict       = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrPermissionDenied          = NewDomainError("PERMISSION_DENIED", "Missing capability for this operation")
	ErrStateConflict             = NewDomainError("STATE_CONFLICT", "Operation not allowed in current state")
	ErrInsufficientStock         = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientWalletBalance = NewDomainError("INSUFFICIENT_WALLET_BALANCE", "Insufficient wallet balance available")
)
