package dto

import "net/http"

// Error codes shared between the domain layer and the HTTP surface.
// Handlers never leak raw driver errors; everything funnels through these.
const (
	// General
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"

	// Validation
	ErrCodeValidation = "VALIDATION_ERROR"

	// Auth
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "INVALID_TOKEN"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"

	// Resources
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeTradeInNotFound  = "TRADE_IN_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeConcurrency      = "CONCURRENCY_CONFLICT"
	ErrCodeAlreadyProcessed = "ALREADY_PROCESSED"

	// Workflow
	ErrCodeEmptyCart    = "EMPTY_CART"
	ErrCodeInvalidState = "INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeValidation:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_CATEGORY":       http.StatusBadRequest,
	"INVALID_CONDITION":      http.StatusBadRequest,
	"INVALID_REASON":         http.StatusBadRequest,
	"INVALID_QUOTE":          http.StatusBadRequest,
	"INVALID_SHIPPING":       http.StatusBadRequest,
	"INVALID_PAYMENT_PROOF":  http.StatusBadRequest,
	"INVALID_DEVICE":         http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_USERNAME":       http.StatusBadRequest,
	"INVALID_FULL_NAME":      http.StatusBadRequest,
	"INVALID_CONTENT_TYPE":   http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeProductNotFound: http.StatusNotFound,
	ErrCodeOrderNotFound:   http.StatusNotFound,
	ErrCodeTradeInNotFound: http.StatusNotFound,
	ErrCodeUserNotFound:    http.StatusNotFound,

	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeDuplicateEmail:   http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeConcurrency:      http.StatusConflict,
	ErrCodeAlreadyProcessed: http.StatusConflict,

	ErrCodeEmptyCart:    http.StatusUnprocessableEntity,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 so a missing mapping never turns an
// error into a silent success.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
