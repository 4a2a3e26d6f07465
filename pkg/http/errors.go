package http

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
	// Diagnostic is an optional raw payload for operators (never set for user input errors).
	Diagnostic interface{} `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Status:  status,
	}
}

// WithParam sets a single error param.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// WithDiagnostic attaches a raw payload for debugging.
func (e *AppError) WithDiagnostic(v interface{}) *AppError {
	e.Diagnostic = v
	return e
}

// AsAppError extracts an *AppError from err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *AppError {
	return NewAppError("ERR_BAD_REQUEST", "", message, http.StatusBadRequest)
}

// MissingFieldError creates a 400 error for an absent request field.
func MissingFieldError(field string) *AppError {
	return NewAppError("ERR_REQUIRED", field, fmt.Sprintf("Missing %q", field), http.StatusBadRequest)
}

// UpstreamError creates a 400 error for a required upstream that returned nothing usable.
func UpstreamError(message string) *AppError {
	return NewAppError("ERR_UPSTREAM", "", message, http.StatusBadRequest)
}

// ConfigError creates a 500 error naming a missing setting.
func ConfigError(setting string) *AppError {
	return NewAppError("ERR_CONFIG", setting, fmt.Sprintf("Missing %s in server environment", setting), http.StatusInternalServerError).
		WithParam("setting", setting)
}

// TooManyRequestsError creates a 429 error.
func TooManyRequestsError(message string) *AppError {
	return NewAppError("ERR_RATE_LIMITED", "", message, http.StatusTooManyRequests)
}

// MethodNotAllowedError creates a 405 error.
func MethodNotAllowedError() *AppError {
	return NewAppError("ERR_METHOD", "", "Method not allowed", http.StatusMethodNotAllowed)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError("ERR_INTERNAL", "", message, http.StatusInternalServerError)
}
