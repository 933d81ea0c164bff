package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"worklog/internal/api"
)

// AutoEndCommand runs the auto-end job once
type AutoEndCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewAutoEndCommand creates a new autoend command handler
func NewAutoEndCommand(app *App) *AutoEndCommand {
	return &AutoEndCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the autoend command
func (c *AutoEndCommand) Execute(ctx context.Context, args []string) error {
	result, err := c.businessAPI.RunAutoEnd(ctx)
	if err != nil {
		return c.errorHandler.Handle("auto-end intervals", err)
	}
	if result.Skipped {
		fmt.Fprintln(c.out, "Auto-end is already running")
		return nil
	}
	fmt.Fprintf(c.out, "Closed %s of %s running intervals\n",
		humanize.Comma(int64(result.Closed)), humanize.Comma(int64(result.Found)))
	return nil
}

// CleanupCommand runs the retention job once
type CleanupCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewCleanupCommand creates a new cleanup command handler
func NewCleanupCommand(app *App) *CleanupCommand {
	return &CleanupCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the cleanup command
func (c *CleanupCommand) Execute(ctx context.Context, args []string) error {
	result, err := c.businessAPI.RunCleanup(ctx)
	if err != nil {
		return c.errorHandler.Handle("clean up", err)
	}
	if result.Skipped {
		fmt.Fprintln(c.out, "Cleanup is already running")
		return nil
	}
	fmt.Fprintf(c.out, "Removed data created before %s\n", result.Cutoff.Format("2006-01-02 15:04"))
	fmt.Fprintf(c.out, "  tasks:     %s\n", humanize.Comma(result.TasksDeleted))
	fmt.Fprintf(c.out, "  intervals: %s\n", humanize.Comma(result.IntervalsDeleted))
	fmt.Fprintf(c.out, "  users:     %s\n", humanize.Comma(result.UsersDeleted))
	return nil
}
