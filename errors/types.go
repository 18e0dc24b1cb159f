package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Dataset errors
	ErrCodeLoadFailed        ErrorCode = "LOAD_FAILED"
	ErrCodeFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// AtlasError represents a structured error with context
type AtlasError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *AtlasError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AtlasError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AtlasError) WithDetail(key string, value interface{}) *AtlasError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *AtlasError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new AtlasError
func New(code ErrorCode, message string) *AtlasError {
	return &AtlasError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AtlasError
func Wrap(err error, code ErrorCode, message string) *AtlasError {
	return &AtlasError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific AtlasError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	atlasErr, ok := err.(*AtlasError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return atlasErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	atlasErr, ok := err.(*AtlasError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return atlasErr.Code
}
