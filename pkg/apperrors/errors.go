package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError carries an error code, a client-facing message and the HTTP
// status it should be rendered with. The wrapped error never reaches the
// client.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError without an underlying cause.
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying cause to a new AppError.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON keeps the wire shape down to message/code/details.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Message string      `json:"message"`
		Code    ErrorCode   `json:"code"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Message: e.Message,
		Code:    e.Code,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Common helpers ---

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// ValidationError reports a field-validation failure. Every such case
// answers 422 with the fixed "Invalid data" message; field details travel
// in the details slot.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "Invalid data", http.StatusUnprocessableEntity).WithDetails(details)
}

// NewBadRequestError reports a malformed or empty request (400).
func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// NewConflictError reports a state conflict answered with 400, e.g. a
// duplicate like.
func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// NewForbiddenError reports a failed role or ownership requirement.
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}
