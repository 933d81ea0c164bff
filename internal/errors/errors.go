package errors

import (
	"context"
	"errors"
	"fmt"
)

// Error codes for the failure kinds callers branch on
const (
	CodeTaskNotFound        = "TASK_NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeIntervalNotFound    = "INTERVAL_NOT_FOUND"
	CodeNoOpenInterval      = "NO_OPEN_INTERVAL"
	CodeNoPausedInterval    = "NO_PAUSED_INTERVAL"
	CodeNoIntervals         = "NO_INTERVALS_FOR_TASK"
	CodeIntervalAlreadyOpen = "INTERVAL_ALREADY_OPEN"
	CodeCleanupFailed       = "CLEANUP_FAILED"
)

// Cleanup sub-steps reported by CleanupFailed errors
const (
	SubsystemTasks     = "tasks"
	SubsystemIntervals = "intervals"
	SubsystemUsers     = "users"
)

// Sentinels for errors.Is. Matching compares Type and Code only.
var (
	ErrTaskNotFound        = &AppError{Type: ErrorTypeNotFound, Code: CodeTaskNotFound}
	ErrUserNotFound        = &AppError{Type: ErrorTypeNotFound, Code: CodeUserNotFound}
	ErrIntervalNotFound    = &AppError{Type: ErrorTypeNotFound, Code: CodeIntervalNotFound}
	ErrNoOpenInterval      = &AppError{Type: ErrorTypeNoOpenInterval, Code: CodeNoOpenInterval}
	ErrNoPausedInterval    = &AppError{Type: ErrorTypeNoPausedInterval, Code: CodeNoPausedInterval}
	ErrNoIntervals         = &AppError{Type: ErrorTypeNoIntervals, Code: CodeNoIntervals}
	ErrIntervalAlreadyOpen = &AppError{Type: ErrorTypeConflict, Code: CodeIntervalAlreadyOpen}
	ErrCleanupFailed       = &AppError{Type: ErrorTypeCleanupFailed, Code: CodeCleanupFailed}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewTaskNotFoundError creates a not found error for a task
func NewTaskNotFoundError(id int64) *AppError {
	err := NewNotFoundError("task", fmt.Sprintf("%d", id))
	err.Code = CodeTaskNotFound
	return err
}

// NewUserNotFoundError creates a not found error for a user
func NewUserNotFoundError(identifier string) *AppError {
	err := NewNotFoundError("user", identifier)
	err.Code = CodeUserNotFound
	return err
}

// NewIntervalNotFoundError creates a not found error for an interval
func NewIntervalNotFoundError(identifier string) *AppError {
	err := NewNotFoundError("interval", identifier)
	err.Code = CodeIntervalNotFound
	return err
}

// NewNoOpenIntervalError is returned by stop and pause when nothing is running
func NewNoOpenIntervalError(taskID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeNoOpenInterval,
		Message: fmt.Sprintf("task %d has no open interval", taskID),
		Code:    CodeNoOpenInterval,
		Context: map[string]interface{}{
			"task_id": taskID,
		},
	}
}

// NewNoPausedIntervalError is returned by resume when the task is not paused
func NewNoPausedIntervalError(taskID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeNoPausedInterval,
		Message: fmt.Sprintf("task %d is not paused", taskID),
		Code:    CodeNoPausedInterval,
		Context: map[string]interface{}{
			"task_id": taskID,
		},
	}
}

// NewNoIntervalsError is returned when elapsed time is requested for a task that was never started
func NewNoIntervalsError(taskID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeNoIntervals,
		Message: fmt.Sprintf("task %d has never been started", taskID),
		Code:    CodeNoIntervals,
		Context: map[string]interface{}{
			"task_id": taskID,
		},
	}
}

// NewIntervalAlreadyOpenError is returned when a task that is running is started again
func NewIntervalAlreadyOpenError(taskID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("task %d already has an open interval", taskID),
		Code:    CodeIntervalAlreadyOpen,
		Context: map[string]interface{}{
			"task_id": taskID,
		},
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, identifier),
		Code:    "CONFLICT",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewCleanupFailedError reports which retention sub-step failed
func NewCleanupFailedError(subsystem string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCleanupFailed,
		Message: fmt.Sprintf("cleanup of %s failed", subsystem),
		Code:    CodeCleanupFailed,
		Cause:   cause,
		Context: map[string]interface{}{
			"subsystem": subsystem,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewStoreError wraps a storage failure. A cause that is an expired context
// deadline becomes a timeout error.
func NewStoreError(operation string, cause error) *AppError {
	if errors.Is(cause, context.DeadlineExceeded) {
		err := NewTimeoutError(operation, nil)
		err.Cause = cause
		return err
	}
	return NewDatabaseError(operation, cause)
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// CleanupSubsystem returns the failing sub-step of a CleanupFailed error
func CleanupSubsystem(err error) (string, bool) {
	appErr, ok := AsAppError(err)
	if !ok || !appErr.IsType(ErrorTypeCleanupFailed) {
		return "", false
	}
	value, ok := appErr.GetContext("subsystem")
	if !ok {
		return "", false
	}
	subsystem, ok := value.(string)
	return subsystem, ok
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypePermission:
			return appErr.Message
		case ErrorTypeConflict, ErrorTypeNoOpenInterval, ErrorTypeNoPausedInterval, ErrorTypeNoIntervals:
			return appErr.Message
		case ErrorTypeCleanupFailed:
			return appErr.Message + ". It will be retried on the next scheduled run."
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // These are user errors, not system errors
		case ErrorTypeConflict, ErrorTypeNoOpenInterval, ErrorTypeNoPausedInterval, ErrorTypeNoIntervals:
			return false
		case ErrorTypeDatabase, ErrorTypeTimeout, ErrorTypePermission, ErrorTypeCleanupFailed:
			return true // These are system errors that should be logged
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
