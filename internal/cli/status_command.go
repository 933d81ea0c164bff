package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/services"
)

// StatusCommand shows the latest interval of a task
type StatusCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	clock        clock.Clock
	out          io.Writer
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		clock:        app.clock,
		out:          app.out,
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	taskID, err := singleTaskID("status", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.GetStatus(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("get status", err)
	}

	fmt.Fprintf(c.out, "Task %d: %s\n", session.Task.ID, session.Task.Name)
	fmt.Fprintf(c.out, "  %s\n", c.describe(session.Interval))
	fmt.Fprintf(c.out, "  Total: %s\n", services.FormatDuration(session.Elapsed))
	return nil
}

// describe renders an interval relative to now, e.g. "running, started 3 hours ago"
func (c *StatusCommand) describe(interval *domain.Interval) string {
	now := c.clock.Now()
	started := humanize.RelTime(interval.StartTime, now, "ago", "from now")
	if interval.IsOpen() {
		return "running, started " + started
	}

	state := strings.ToLower(strings.ReplaceAll(string(interval.State), "_", " "))
	ended := humanize.RelTime(*interval.EndTime, now, "ago", "from now")
	return fmt.Sprintf("%s, started %s, ended %s", state, started, ended)
}
