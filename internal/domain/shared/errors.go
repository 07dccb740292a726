package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so errors.Is works against the
// sentinel values below regardless of the message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAlreadyCancelled    = NewDomainError("ALREADY_CANCELLED", "Booking is already cancelled")
	ErrNoApplicableRule    = NewDomainError("NO_APPLICABLE_RULE", "No cancellation rule covers the given day offset")
	ErrInvalidAmount       = NewDomainError("INVALID_AMOUNT", "Amount must be a positive number")
	ErrNoBalance           = NewDomainError("NO_BALANCE", "No outstanding balance on this booking")
	ErrNoPayment           = NewDomainError("NO_PAYMENT", "No payment record exists for this booking")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrTransactionFailure  = NewDomainError("TRANSACTION_FAILURE", "Transaction could not be committed")
)
