package cli

import (
	"context"
	"io"

	"worklog/internal/api"
)

// StopCommand handles the stop command
type StopCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("stop", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.StopTask(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("stop task", err)
	}
	printSession(c.out, "Stopped", session)
	return nil
}
