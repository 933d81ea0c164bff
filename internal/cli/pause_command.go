package cli

import (
	"context"
	"io"

	"worklog/internal/api"
)

// PauseCommand handles the pause command
type PauseCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the pause command
func (c *PauseCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("pause", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.PauseTask(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("pause task", err)
	}
	printSession(c.out, "Paused", session)
	return nil
}
