package cli

import (
	"context"
	"fmt"
	"io"

	"worklog/internal/api"
	"worklog/internal/errors"
	"worklog/internal/services"
)

// StartCommand handles the start command
type StartCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("start", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.StartTask(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("start task", err)
	}
	fmt.Fprintf(c.out, "Started task %d: %s\n", session.Task.ID, session.Task.Name)
	return nil
}

// singleTaskID parses the lone task ID argument of a lifecycle command
func singleTaskID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError("command", command, fmt.Sprintf("usage: worklog %s <task id>", command))
	}
	return parseTaskID(args[0])
}

// printSession writes "<verb> task N: name (HH:MM total)"
func printSession(out io.Writer, verb string, session *api.TaskSession) {
	fmt.Fprintf(out, "%s task %d: %s (%s total)\n",
		verb, session.Task.ID, session.Task.Name, services.FormatDuration(session.Elapsed))
}
