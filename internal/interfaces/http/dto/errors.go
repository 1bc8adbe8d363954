package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain error codes come from
// the domain packages and are mapped by GetHTTPStatus.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "PERMISSION_DENIED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeStatus maps the cross-cutting codes that don't follow a naming
// pattern to HTTP status codes
var errorCodeStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInternal:     http.StatusInternalServerError,

	"TOKEN_EXPIRED":        http.StatusUnauthorized,
	"TOKEN_INVALID":        http.StatusUnauthorized,
	"TOKEN_REVOKED":        http.StatusUnauthorized,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"STATE_CONFLICT":       http.StatusConflict,
	"CODE_EXISTS":          http.StatusConflict,
	"CUSTOMER_BLACKLISTED": http.StatusUnprocessableEntity,
	"POLICY_VIOLATION":     http.StatusUnprocessableEntity,
	"DUPLICATE_PRODUCT":    http.StatusUnprocessableEntity,
	"OVERPAYMENT_REJECTED": http.StatusUnprocessableEntity,
	"NO_ITEMS":             http.StatusBadRequest,
}

// GetHTTPStatus resolves the HTTP status for a domain error code. Codes not
// in the explicit map fall through to naming-pattern rules; unknown codes
// are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "ALREADY_"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INSUFFICIENT_"),
		strings.HasPrefix(code, "EXCEEDS_"),
		strings.HasPrefix(code, "CANNOT_"):
		return http.StatusUnprocessableEntity
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
