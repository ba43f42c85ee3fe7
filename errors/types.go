package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Capture errors
	ErrCodeCommandNotFound  ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandExecution ErrorCode = "COMMAND_EXECUTION_FAILURE"
	ErrCodeCommandTimeout   ErrorCode = "COMMAND_TIMEOUT"

	// Artifact errors
	ErrCodeUnsupportedOutput ErrorCode = "UNSUPPORTED_OUTPUT"
	ErrCodeWriteFailure      ErrorCode = "WRITE_FAILURE"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// MockError represents a structured error with context
type MockError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *MockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MockError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *MockError) WithDetail(key string, value interface{}) *MockError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *MockError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new MockError
func New(code ErrorCode, message string) *MockError {
	return &MockError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a MockError
func Wrap(err error, code ErrorCode, message string) *MockError {
	return &MockError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific MockError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	mockErr, ok := err.(*MockError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return mockErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	mockErr, ok := err.(*MockError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return mockErr.Code
}
