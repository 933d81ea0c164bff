package cli

import (
	"context"
	"fmt"
	"io"

	"worklog/internal/api"
	"worklog/internal/services"
)

// ElapsedCommand prints the total tracked time of a task
type ElapsedCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewElapsedCommand creates a new elapsed command handler
func NewElapsedCommand(app *App) *ElapsedCommand {
	return &ElapsedCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the elapsed command
func (c *ElapsedCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("elapsed", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	elapsed, err := c.businessAPI.GetElapsed(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("compute elapsed time", err)
	}
	fmt.Fprintln(c.out, services.FormatDuration(elapsed))
	return nil
}
