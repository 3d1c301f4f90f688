package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Archive errors
	ErrArchiveFormat      ErrorCode = "ARCHIVE_FORMAT"
	ErrArchiveUnsupported ErrorCode = "ARCHIVE_UNSUPPORTED"
	ErrArchiveEncrypted   ErrorCode = "ARCHIVE_ENCRYPTED"

	// Merge errors
	ErrAreaMatch ErrorCode = "AREA_MATCH"
	ErrLoadOrder ErrorCode = "LOAD_ORDER"
	ErrLocked    ErrorCode = "LOCKED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// OmnipakError represents a structured error with code and details
type OmnipakError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OmnipakError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OmnipakError) Unwrap() error {
	return e.Wrapped
}

// Is matches any OmnipakError carrying the same code.
func (e *OmnipakError) Is(target error) bool {
	var targetErr *OmnipakError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OmnipakError with the given code and message
func New(code ErrorCode, message string) *OmnipakError {
	return &OmnipakError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OmnipakError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OmnipakError {
	return &OmnipakError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OmnipakError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *OmnipakError {
	if err == nil {
		return nil
	}
	return &OmnipakError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OmnipakError {
	if err == nil {
		return nil
	}
	return &OmnipakError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OmnipakError) WithDetail(key string, value interface{}) *OmnipakError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var omniErr *OmnipakError
	if errors.As(err, &omniErr) {
		return omniErr.Code == code
	}
	return false
}

// As returns the first OmnipakError in err's chain.
func As(err error) (*OmnipakError, bool) {
	var omniErr *OmnipakError
	if errors.As(err, &omniErr) {
		return omniErr, true
	}
	return nil, false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OmnipakError
func GetErrorCode(err error) ErrorCode {
	var omniErr *OmnipakError
	if errors.As(err, &omniErr) {
		return omniErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OmnipakError
func GetErrorDetails(err error) map[string]interface{} {
	var omniErr *OmnipakError
	if errors.As(err, &omniErr) {
		return omniErr.Details
	}
	return nil
}
