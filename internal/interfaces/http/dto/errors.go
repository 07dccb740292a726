package dto

import "net/http"

// Error codes exposed by the API. Domain errors carry these codes directly;
// the HTTP layer only maps them to status codes.

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeTransactionFailure is used when a transaction could not commit
	ErrCodeTransactionFailure = "TRANSACTION_FAILURE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInvalidAmount is used for non-positive money amounts
	ErrCodeInvalidAmount = "INVALID_AMOUNT"
	// ErrCodeNoBalance is used when a booking has no outstanding balance
	ErrCodeNoBalance = "NO_BALANCE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeNoPayment is used when a booking has no payment record
	ErrCodeNoPayment = "NO_PAYMENT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// State error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeAlreadyCancelled is used when cancelling a cancelled booking
	ErrCodeAlreadyCancelled = "ALREADY_CANCELLED"
	// ErrCodeNoApplicableRule is used when no penalty tier covers the day offset
	ErrCodeNoApplicableRule = "NO_APPLICABLE_RULE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeTransactionFailure: http.StatusInternalServerError,

	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidAmount: http.StatusBadRequest,
	ErrCodeNoBalance:     http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeNoPayment:           http.StatusNotFound,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:     http.StatusConflict,
	ErrCodeAlreadyCancelled: http.StatusConflict,
	ErrCodeNoApplicableRule: http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
