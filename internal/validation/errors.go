package validation

import (
	"fmt"
	"strings"
)

// ValidationErrorType represents the type of validation error
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue     ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange     ValidationErrorType = "invalid_range"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
)

// FieldError is a validation failure on a single input field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError collects every field failure of one input
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return ve.Errors[0].Error()
	}

	messages := make([]string, 0, len(ve.Errors))
	for i := range ve.Errors {
		messages = append(messages, ve.Errors[i].Error())
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// HasErrors returns true if any field failed
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// OrNil returns ve as an error, or nil when nothing failed
func (ve *ValidationError) OrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// AddError adds a new field error
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddRequiredError adds a required field error
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field), nil)
}

// AddInvalidLengthError adds an invalid length error
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	message := fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	ve.AddError(field, ErrorTypeInvalidLength, message, value)
}

// AddInvalidValueError adds an invalid value error
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, fmt.Sprintf("%s has invalid value: %s", field, reason), value)
}

// AddInvalidRangeError adds an invalid range error
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidRange, fmt.Sprintf("%s has invalid range: %s", field, reason), value)
}

// AddInvalidCharacterError adds an invalid character error
func (ve *ValidationError) AddInvalidCharacterError(field string, value interface{}) {
	ve.AddError(field, ErrorTypeInvalidCharacter, fmt.Sprintf("%s contains invalid characters", field), value)
}

// GetFieldErrors returns all errors for a specific field
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var fieldErrors []FieldError
	for _, err := range ve.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// GetUserFriendlyMessage returns the messages without field prefixes
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}

	lines := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		lines = append(lines, "- "+err.Message)
	}
	return "Multiple validation errors occurred:\n" + strings.Join(lines, "\n")
}
