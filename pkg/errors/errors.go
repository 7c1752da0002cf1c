package errors

import (
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates the caller submitted missing or malformed input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInference indicates a classifier invocation failed
	ErrorTypeInference ErrorType = "INFERENCE"

	// ErrorTypeConfiguration indicates a missing or unusable configuration artifact
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeGeoSource indicates an external geospatial data source failed
	ErrorTypeGeoSource ErrorType = "GEO_SOURCE"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error carrying a machine-readable kind
// and a human-readable detail string.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInferenceError creates a new inference error
func NewInferenceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInference,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Err:     err,
	}
}

// NewGeoSourceError creates a new geospatial source error
func NewGeoSourceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeGeoSource,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
