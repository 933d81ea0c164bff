package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"worklog/internal/api"
	"worklog/internal/errors"
	"worklog/internal/services"
)

// TaskAddCommand handles the task add command
type TaskAddCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
	options      *CommandOptions
}

// NewTaskAddCommand creates a new task add command handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
		options:      app.options,
	}
}

// Execute runs the task add command. Every argument after the username forms the task name.
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "task add", "usage: worklog task add <username> <task name>")
	}

	name := strings.Join(args[1:], " ")
	task, err := c.businessAPI.CreateTask(ctx, args[0], name, c.options.Description)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	fmt.Fprintf(c.out, "Added task %d: %s\n", task.ID, task.Name)
	return nil
}

// TaskListCommand handles the task list command
type TaskListCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewTaskListCommand creates a new task list command handler
func NewTaskListCommand(app *App) *TaskListCommand {
	return &TaskListCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the task list command
func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task list", "usage: worklog task list <username>")
	}

	tasks, err := c.businessAPI.ListTasks(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if len(tasks) == 0 {
		fmt.Fprintf(c.out, "No tasks for %s\n", args[0])
		return nil
	}

	for _, task := range tasks {
		if task.Description != "" {
			fmt.Fprintf(c.out, "%d\t%s\t%s\n", task.ID, task.Name, task.Description)
			continue
		}
		fmt.Fprintf(c.out, "%d\t%s\n", task.ID, task.Name)
	}
	return nil
}

// TaskDeleteCommand handles the task delete command
type TaskDeleteCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewTaskDeleteCommand creates a new task delete command handler
func NewTaskDeleteCommand(app *App) *TaskDeleteCommand {
	return &TaskDeleteCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the task delete command
func (c *TaskDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task delete", "usage: worklog task delete <task id>")
	}
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.businessAPI.DeleteTask(ctx, taskID); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	fmt.Fprintf(c.out, "Deleted task %d\n", taskID)
	return nil
}

// TaskShowCommand prints one task with its owner and total
type TaskShowCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewTaskShowCommand creates a new task show command handler
func NewTaskShowCommand(app *App) *TaskShowCommand {
	return &TaskShowCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the task show command
func (c *TaskShowCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("task show", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	details, err := c.businessAPI.GetTask(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}

	fmt.Fprintf(c.out, "Task %d: %s\n", details.Task.ID, details.Task.Name)
	fmt.Fprintf(c.out, "  Owner: %s\n", details.Owner.Username)
	if details.Task.Description != "" {
		fmt.Fprintf(c.out, "  Description: %s\n", details.Task.Description)
	}
	fmt.Fprintf(c.out, "  Total: %s\n", services.FormatDuration(details.Elapsed))
	return nil
}

// TaskUpdateCommand renames a task or replaces its description
type TaskUpdateCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
	options      *CommandOptions
}

// NewTaskUpdateCommand creates a new task update command handler
func NewTaskUpdateCommand(app *App) *TaskUpdateCommand {
	return &TaskUpdateCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
		options:      app.options,
	}
}

// Execute runs the task update command. Arguments after the ID form the new name.
func (c *TaskUpdateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "task update", "usage: worklog task update <task id> [new name] [--description D]")
	}
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	var description *string
	if c.options.DescriptionSet {
		description = &c.options.Description
	}
	task, err := c.businessAPI.UpdateTask(ctx, taskID, strings.Join(args[1:], " "), description)
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}
	fmt.Fprintf(c.out, "Updated task %d: %s\n", task.ID, task.Name)
	return nil
}
