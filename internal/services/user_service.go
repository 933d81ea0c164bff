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

type userServiceImpl struct {
	store         repository.Store
	clock         clock.Clock
	userValidator *validation.UserValidator
}

// NewUserService creates a new UserService instance
func NewUserService(store repository.Store, clk clock.Clock) UserService {
	return &userServiceImpl{
		store:         store,
		clock:         clk,
		userValidator: validation.NewUserValidator(),
	}
}

func (u *userServiceImpl) CreateUser(ctx context.Context, username, displayName, email string) (*domain.User, error) {
	if err := u.userValidator.ValidateUser(username, email); err != nil {
		return nil, errors.NewValidationError("invalid user", err)
	}

	user := domain.NewUser(strings.TrimSpace(username), strings.TrimSpace(displayName), email, u.clock.Now())
	if err := u.store.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *userServiceImpl) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return u.store.GetUserByUsername(ctx, strings.TrimSpace(username))
}

func (u *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.store.GetUser(ctx, id)
}

func (u *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return u.store.ListUsers(ctx)
}

func (u *userServiceImpl) UpdateUser(ctx context.Context, username, displayName, email string) (*domain.User, error) {
	displayName, email = strings.TrimSpace(displayName), strings.TrimSpace(email)
	if displayName == "" && email == "" {
		return nil, errors.NewInvalidInputError("user", username, "nothing to update, give a display name or an email")
	}
	if err := u.userValidator.ValidateUser(username, email); err != nil {
		return nil, errors.NewValidationError("invalid user", err)
	}

	user, err := u.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if displayName != "" {
		user.DisplayName = displayName
	}
	if email != "" {
		user.Email = email
	}

	if err := u.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userServiceImpl) ResetUser(ctx context.Context, username string) (*ResetResult, error) {
	user, err := u.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	result := &ResetResult{User: user}
	if err := u.deleteTasks(ctx, user, result); err != nil {
		return nil, err
	}
	logging.Debugf("user %s reset: %d tasks, %d intervals removed\n", user.Username, result.TasksDeleted, result.IntervalsDeleted)
	return result, nil
}

func (u *userServiceImpl) DeleteUser(ctx context.Context, username string) error {
	user, err := u.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}

	if err := u.deleteTasks(ctx, user, &ResetResult{User: user}); err != nil {
		return err
	}
	return u.store.DeleteUser(ctx, user.ID)
}

// deleteTasks removes every task of user with its intervals, counting into result
func (u *userServiceImpl) deleteTasks(ctx context.Context, user *domain.User, result *ResetResult) error {
	tasks, err := u.store.ListTasksByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		removed, err := deleteTaskCascade(ctx, u.store, task.ID)
		if err != nil {
			return err
		}
		result.TasksDeleted++
		result.IntervalsDeleted += removed
	}
	return nil
}
