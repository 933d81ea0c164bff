package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/errors"
)

// UserAddCommand handles the user add command
type UserAddCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
	options      *CommandOptions
}

// NewUserAddCommand creates a new user add command handler
func NewUserAddCommand(app *App) *UserAddCommand {
	return &UserAddCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
		options:      app.options,
	}
}

// Execute runs the user add command
func (c *UserAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user add", "usage: worklog user add <username>")
	}

	user, err := c.businessAPI.CreateUser(ctx, args[0], c.options.DisplayName, c.options.Email)
	if err != nil {
		return c.errorHandler.Handle("add user", err)
	}
	fmt.Fprintf(c.out, "Added user %s\n", user.Username)
	return nil
}

// UserDeleteCommand handles the user delete command
type UserDeleteCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewUserDeleteCommand creates a new user delete command handler
func NewUserDeleteCommand(app *App) *UserDeleteCommand {
	return &UserDeleteCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the user delete command
func (c *UserDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user delete", "usage: worklog user delete <username>")
	}

	if err := c.businessAPI.DeleteUser(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete user", err)
	}
	fmt.Fprintf(c.out, "Deleted user %s and all of their tasks\n", args[0])
	return nil
}

// UserShowCommand prints one user
type UserShowCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	clock        clock.Clock
	out          io.Writer
}

// NewUserShowCommand creates a new user show command handler
func NewUserShowCommand(app *App) *UserShowCommand {
	return &UserShowCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		clock:        app.clock,
		out:          app.out,
	}
}

// Execute runs the user show command
func (c *UserShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user show", "usage: worklog user show <username>")
	}

	user, err := c.businessAPI.GetUser(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("show user", err)
	}

	fmt.Fprintf(c.out, "User %s\n", user.Username)
	if user.DisplayName != "" {
		fmt.Fprintf(c.out, "  Name: %s\n", user.DisplayName)
	}
	if user.Email != "" {
		fmt.Fprintf(c.out, "  Email: %s\n", user.Email)
	}
	fmt.Fprintf(c.out, "  Created %s\n", humanize.RelTime(user.CreatedAt, c.clock.Now(), "ago", "from now"))
	return nil
}

// UserListCommand lists every user
type UserListCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewUserListCommand creates a new user list command handler
func NewUserListCommand(app *App) *UserListCommand {
	return &UserListCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the user list command
func (c *UserListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "user list", "usage: worklog user list")
	}

	users, err := c.businessAPI.ListUsers(ctx)
	if err != nil {
		return c.errorHandler.Handle("list users", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(c.out, "No users")
		return nil
	}

	for _, user := range users {
		fmt.Fprintf(c.out, "%s\t%s\t%s\n", user.Username, user.DisplayName, user.Email)
	}
	return nil
}

// UserUpdateCommand changes a user's display name or email
type UserUpdateCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
	options      *CommandOptions
}

// NewUserUpdateCommand creates a new user update command handler
func NewUserUpdateCommand(app *App) *UserUpdateCommand {
	return &UserUpdateCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
		options:      app.options,
	}
}

// Execute runs the user update command
func (c *UserUpdateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user update", "usage: worklog user update <username> [--name N] [--email E]")
	}

	user, err := c.businessAPI.UpdateUser(ctx, args[0], c.options.DisplayName, c.options.Email)
	if err != nil {
		return c.errorHandler.Handle("update user", err)
	}
	fmt.Fprintf(c.out, "Updated user %s\n", user.Username)
	return nil
}

// UserResetCommand removes a user's tasks and intervals but keeps the user
type UserResetCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewUserResetCommand creates a new user reset command handler
func NewUserResetCommand(app *App) *UserResetCommand {
	return &UserResetCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the user reset command
func (c *UserResetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "user reset", "usage: worklog user reset <username>")
	}

	result, err := c.businessAPI.ResetUser(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("reset user", err)
	}
	fmt.Fprintf(c.out, "Reset user %s: removed %s tasks and %s intervals\n",
		result.User.Username, humanize.Comma(result.TasksDeleted), humanize.Comma(result.IntervalsDeleted))
	return nil
}
