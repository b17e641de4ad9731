package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeInvalidInput is used for input that fails domain validation
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeValidation is used for request-level validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInvalidAmount is used when a monetary string cannot be parsed
	ErrCodeInvalidAmount = "INVALID_AMOUNT"
)

// Persistence error codes
const (
	// ErrCodePersistenceFailure is used when a storage write fails outright
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	// ErrCodePartialWriteFailure is used when one leg of a coordinated
	// dual write failed while the other settled
	ErrCodePartialWriteFailure = "PARTIAL_WRITE_FAILURE"
	// ErrCodePartialCascadeFailure is used when a cascading delete stopped
	// after some child records were already removed
	ErrCodePartialCascadeFailure = "PARTIAL_CASCADE_FAILURE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidAmount: http.StatusBadRequest,

	ErrCodePersistenceFailure: http.StatusInternalServerError,

	// Partial failures left inconsistent state behind. 500 tells the
	// caller the operation did not complete; the body carries the code
	// so clients can distinguish "retry" from "reconcile".
	ErrCodePartialWriteFailure:   http.StatusInternalServerError,
	ErrCodePartialCascadeFailure: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
