package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the interface layer itself
const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// errorStatusMap maps domain error codes to HTTP status codes
var errorStatusMap = map[string]int{
	"NOT_FOUND":              http.StatusNotFound,
	"ALREADY_EXISTS":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"LIMIT_REACHED":          http.StatusConflict,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"NO_ITEMS":               http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":     http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":       http.StatusUnprocessableEntity,
	"PLAN_INACTIVE":          http.StatusUnprocessableEntity,
	"NO_ACTIVE_SUBSCRIPTION": http.StatusUnprocessableEntity,
	"AI_UNAVAILABLE":         http.StatusServiceUnavailable,
	CodeUnauthorized:         http.StatusUnauthorized,
}

// GetHTTPStatus resolves the HTTP status code for a domain error code.
// Validation codes all start with INVALID_, anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
