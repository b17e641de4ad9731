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

// Is makes errors.Is match any two domain errors with the same code, so
// callers can compare against the sentinels below regardless of message.
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
	ErrNotFound              = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput          = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation            = NewDomainError("VALIDATION_ERROR", "Input failed validation")
	ErrPersistenceFailure    = NewDomainError("PERSISTENCE_FAILURE", "Storage operation failed")
	ErrPartialWriteFailure   = NewDomainError("PARTIAL_WRITE_FAILURE", "One of the coordinated writes failed; state may be partially updated")
	ErrPartialCascadeFailure = NewDomainError("PARTIAL_CASCADE_FAILURE", "Cascade delete removed some but not all dependent entities")
)
