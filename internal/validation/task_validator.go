package validation

import "unicode/utf8"

// TaskValidator validates task input
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTaskName validates a task name for creation
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()
	trimmedName := tv.validator.TrimString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("task_name")
		return validationError
	}
	if !tv.validator.IsValidStringLength(trimmedName, 1, TaskNameMaxLength) {
		validationError.AddInvalidLengthError("task_name", trimmedName, 1, TaskNameMaxLength)
	}
	if !tv.validator.IsValidTaskName(trimmedName) {
		validationError.AddInvalidCharacterError("task_name", trimmedName)
	}

	return validationError.OrNil()
}

// ValidateDescription validates an optional task description
func (tv *TaskValidator) ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError("description", description, 0, DescriptionMaxLength)
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTaskName returns the trimmed task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimString(name), nil
}
