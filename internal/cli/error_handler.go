package cli

import (
	"fmt"

	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	eh.log(operation, err)
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, msg)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return err
}

// log records system failures; user mistakes are only reported back
func (eh *ErrorHandler) log(operation string, err error) {
	if errors.ShouldLogError(err) {
		logging.Errorf("%s: %v\n", operation, err)
	}
}

func (eh *ErrorHandler) userMessage(err error) (string, bool) {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage(), true
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		return "", false
	}
	// field-level detail travels as the cause of a validation AppError
	if validationErr, ok := appErr.Cause.(*validation.ValidationError); ok {
		return appErr.Message + ": " + validationErr.GetUserFriendlyMessage(), true
	}
	return errors.GetUserMessage(err), true
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
