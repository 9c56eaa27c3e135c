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

// Is matches domain errors by code so errors.Is works against the
// sentinels below regardless of the message
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
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrLimitReached         = NewDomainError("LIMIT_REACHED", "Resource limit reached for the current subscription plan")
	ErrNoActiveSubscription = NewDomainError("NO_ACTIVE_SUBSCRIPTION", "No active subscription found for this business")
)
