package errors

import (
	"errors"
	"fmt"
)

// Application error codes
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoData         = errors.New("no data available")
	ErrInternalServer = errors.New("internal server error")
)

// AppError represents an application-specific error
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *AppError {
	return &AppError{
		Code:    40400,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     ErrNotFound,
	}
}

// ValidationError creates a validation error
func ValidationError(message string) *AppError {
	return &AppError{
		Code:    40000,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NoDataError reports a widget payload that does not match its type
func NoDataError(message string, cause error) *AppError {
	err := ErrNoData
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrNoData, cause)
	}
	return &AppError{
		Code:    42200,
		Message: message,
		Err:     err,
	}
}

// InternalError creates an internal server error
func InternalError(message string, err error) *AppError {
	return &AppError{
		Code:    50000,
		Message: message,
		Err:     err,
	}
}

// GetAppError extracts an AppError from the chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if the error is a validation error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNoData checks if the error is a no-data error
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
