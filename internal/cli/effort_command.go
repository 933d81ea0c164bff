package cli

import (
	"context"
	"fmt"
	"io"

	"worklog/internal/errors"
	"worklog/internal/services"
)

// EffortCommand prints a user's total tracked time within a range
type EffortCommand struct {
	app          *App
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewEffortCommand creates a new effort command handler
func NewEffortCommand(app *App) *EffortCommand {
	return &EffortCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the effort command
func (c *EffortCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "effort", "usage: worklog effort <username> [--from time] [--to time]")
	}
	r, err := c.app.resolveRange(c.app.options.From, c.app.options.To)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	total, err := c.app.businessAPI.GetTotalEffort(ctx, args[0], r)
	if err != nil {
		return c.errorHandler.Handle("compute effort", err)
	}
	fmt.Fprintln(c.out, services.FormatDuration(total))
	return nil
}
