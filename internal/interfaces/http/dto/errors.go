package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain errors carry
// their own codes and are mapped through GetHTTPStatus.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes starting with INVALID_ fall back to 400 when not listed here.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"LAST_ADMIN":          http.StatusForbidden,

	"ALREADY_EXISTS":     http.StatusConflict,
	"SKU_EXISTS":         http.StatusConflict,
	"EMAIL_EXISTS":       http.StatusConflict,
	"CATEGORY_EXISTS":    http.StatusConflict,
	"PRODUCT_REFERENCED": http.StatusConflict,

	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"ALREADY_SETTLED":      http.StatusUnprocessableEntity,
	"NOT_INSTALLMENT":      http.StatusUnprocessableEntity,

	"EMPTY_CART":           http.StatusBadRequest,
	"INSUFFICIENT_PAYMENT": http.StatusBadRequest,
	"MISSING_CUSTOMER":     http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
