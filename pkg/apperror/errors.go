package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Billing errors. These are the failure modes of the fee issuance and
// reconciliation engine; services return them and handlers map them straight
// to HTTP responses.
var (
	// ErrInvalidDateRange is returned when a date range's start falls after its end.
	ErrInvalidDateRange = &AppError{Code: http.StatusBadRequest, Message: "Start date must not be after end date"}
	// ErrEmptyDateRange is returned when a feeding-fee range contains no billable weekdays.
	ErrEmptyDateRange = &AppError{Code: http.StatusBadRequest, Message: "Date range contains no billable weekdays"}
	// ErrConflictingKey is returned when two concurrent upserts race to create
	// the same fee cohort; exactly one of them wins.
	ErrConflictingKey = &AppError{Code: http.StatusConflict, Message: "A fee definition for this class, term and year was created concurrently"}
	// ErrDuplicateFeedingFee is returned when a feeding fee already exists for
	// the academic year and term; feeding fees must be deleted and recreated.
	ErrDuplicateFeedingFee = &AppError{Code: http.StatusConflict, Message: "A feeding fee has already been issued for this term and year"}
	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = &AppError{Code: http.StatusBadRequest, Message: "Payment amount must be greater than zero"}
	// ErrDuplicateReceipt is returned when a receipt number has already been used.
	ErrDuplicateReceipt = &AppError{Code: http.StatusConflict, Message: "Receipt number has already been used"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
