// Package errors provides standardized error handling for the dashboard API.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyInput   ErrorCode = "EMPTY_INPUT"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeUnsafeQuery  ErrorCode = "UNSAFE_QUERY"

	ErrCodeDatabaseConnectionFailed   ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed       ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeSchemaIntrospectionFailed  ErrorCode = "SCHEMA_INTROSPECTION_FAILED"

	ErrCodeRemoteCallFailed ErrorCode = "REMOTE_CALL_FAILED"
	ErrCodeLLMTimeout       ErrorCode = "LLM_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEmptyInputError creates a non-retryable blank-input error.
func NewEmptyInputError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyInput,
		Message:   "Input must not be blank",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable request validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsafeQueryError creates a non-retryable sanitizer rejection.
func NewUnsafeQueryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsafeQuery,
		Message:   "SQL rejected by safety gate",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaIntrospectionFailedError creates a retryable introspection error.
func NewSchemaIntrospectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaIntrospectionFailed,
		Message:   "Schema introspection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps error codes to the statuses returned at the API boundary.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeEmptyInput, ErrCodeInvalidInput, ErrCodeUnsafeQuery:
		return http.StatusBadRequest
	case ErrCodeDatabaseConnectionFailed, ErrCodeRemoteCallFailed, ErrCodeLLMTimeout:
		return http.StatusBadGateway
	case ErrCodeQueryExecutionFailed, ErrCodeSchemaIntrospectionFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSchemaIntrospectionFailed,
		ErrCodeRemoteCallFailed,
		ErrCodeLLMTimeout:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "SCHEMA"):
		return "DATABASE"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "REMOTE"):
		return "AI"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "UNSAFE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
