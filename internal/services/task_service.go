package services

import (
	"context"
	"strings"

	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository"
	"worklog/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store         repository.Store
	clock         clock.Clock
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(store repository.Store, clk clock.Clock) TaskService {
	return &taskServiceImpl{
		store:         store,
		clock:         clk,
		taskValidator: validation.NewTaskValidator(),
	}
}

// CreateTask creates a task owned by username
func (t *taskServiceImpl) CreateTask(ctx context.Context, username, name, description string) (*domain.Task, error) {
	trimmedName, err := t.taskValidator.GetValidTaskName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid task name", err)
	}
	if err := t.taskValidator.ValidateDescription(description); err != nil {
		return nil, errors.NewValidationError("invalid task description", err)
	}

	user, err := t.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(user.ID, trimmedName, description, t.clock.Now())
	if err := t.store.CreateTask(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}
	return t.store.GetTask(ctx, id)
}

// ListTasks lists the user's tasks by name
func (t *taskServiceImpl) ListTasks(ctx context.Context, username string) ([]*domain.Task, error) {
	user, err := t.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	return t.store.ListTasksByUser(ctx, user.ID)
}

// UpdateTask renames a task and optionally replaces its description
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id int64, name string, description *string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}
	if strings.TrimSpace(name) == "" && description == nil {
		return nil, errors.NewInvalidInputError("task", id, "nothing to update, give a name or a description")
	}

	task, err := t.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		trimmedName, err := t.taskValidator.GetValidTaskName(name)
		if err != nil {
			return nil, errors.NewValidationError("invalid task name", err)
		}
		task.Name = trimmedName
	}
	if description != nil {
		if err := t.taskValidator.ValidateDescription(*description); err != nil {
			return nil, errors.NewValidationError("invalid task description", err)
		}
		task.Description = *description
	}

	if err := t.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask deletes a task and all its intervals
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	if _, err := t.store.GetTask(ctx, id); err != nil {
		return err
	}

	_, err := deleteTaskCascade(ctx, t.store, id)
	return err
}

// deleteTaskCascade removes the task's intervals and then the task.
// A task that is already gone is not an error.
func deleteTaskCascade(ctx context.Context, store repository.Store, taskID int64) (int64, error) {
	removed, err := store.DeleteIntervalsForTask(ctx, taskID)
	if err != nil {
		return removed, err
	}
	if err := store.DeleteTask(ctx, taskID); err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return removed, err
	}
	logging.Debugf("task %d deleted with %d intervals\n", taskID, removed)
	return removed, nil
}
