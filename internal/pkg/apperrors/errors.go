package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrFieldRequired    = errors.New("required field is empty")
	ErrFieldNotChecked  = errors.New("field has not passed its uniqueness check")

	// Server-reported conflicts
	ErrConflict           = errors.New("conflict")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNicknameTaken      = errors.New("nickname already in use")
	ErrPhoneTaken         = errors.New("phone number already in use")
	ErrInsufficientPoints = errors.New("not enough points for exchange")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")

	// Transport errors
	ErrTransport         = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed server response")

	// Authorization errors
	ErrUnauthorized = errors.New("not authenticated")
	ErrTokenExpired = errors.New("session token expired")

	// Batch errors
	ErrPartialBatch = errors.New("one or more batch requests failed")
)

// Wizard errors
var (
	ErrStepIncomplete   = errors.New("current step is incomplete")
	ErrNoBackward       = errors.New("backward navigation is not supported")
	ErrAlreadySubmitted = errors.New("registration already submitted")
)

// Admin list errors
var (
	ErrRowNotFound   = errors.New("row not found on current page")
	ErrNoRowEditing  = errors.New("no row is being edited")
	ErrStaleResponse = errors.New("response superseded by a newer request")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates a validation error bound to a field name
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates a new custom error for server-reported conflicts
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewTransportError wraps a transport failure with a user-facing message
func NewTransportError(err error, message string) error {
	return &CustomError{
		Err:     errors.Join(ErrTransport, err),
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
