package cli

import (
	"context"
	"io"

	"worklog/internal/api"
)

// ResumeCommand handles the resume command
type ResumeCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the resume command
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("resume", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.ResumeTask(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("resume task", err)
	}
	printSession(c.out, "Resumed", session)
	return nil
}
