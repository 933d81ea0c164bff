package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"worklog/internal/errors"
	"worklog/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	fieldErr := validation.NewValidationError()
	fieldErr.AddRequiredError("task name")
	validationAppErr := errors.NewValidationError("invalid task name", fieldErr)

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      errors.NewNoOpenIntervalError(7),
			expected: "failed to stop task: task 7 has no open interval",
		},
		{
			name:     "validation error with field detail",
			err:      validationAppErr,
			expected: "failed to stop task: invalid task name: " + fieldErr.GetUserFriendlyMessage(),
		},
		{
			name:     "bare validation error",
			err:      fieldErr,
			expected: "failed to stop task: " + fieldErr.GetUserFriendlyMessage(),
		},
		{
			name:     "database error is hidden",
			err:      errors.NewDatabaseError("close interval", stderrors.New("disk I/O error")),
			expected: "failed to stop task: A database error occurred. Please try again.",
		},
		{
			name:     "plain error",
			err:      stderrors.New("boom"),
			expected: "failed to stop task: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle("stop task", tt.err), tt.expected)
		})
	}

	assert.NoError(t, eh.Handle("stop task", nil))
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	assert.EqualError(t, eh.HandleSimple(errors.NewTaskNotFoundError(3)), "task not found: 3")

	plain := stderrors.New("boom")
	assert.Same(t, plain, eh.HandleSimple(plain))
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	assert.True(t, eh.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.True(t, eh.IsValidationError(validation.NewValidationError()))
	assert.True(t, eh.IsNotFoundError(errors.NewUserNotFoundError("alice")))
	assert.True(t, eh.IsDatabaseError(errors.NewDatabaseError("op", nil)))
	assert.Equal(t, errors.CodeNoPausedInterval, eh.GetErrorCode(errors.NewNoPausedIntervalError(1)))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(stderrors.New("x")))
}
