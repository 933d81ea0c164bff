package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/services"
)

const intervalTimeLayout = "2006-01-02 15:04"

func singleIntervalID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError("command", command, fmt.Sprintf("usage: worklog %s <interval id>", command))
	}
	return parseID("interval ID", args[0])
}

// IntervalShowCommand prints one interval with its task
type IntervalShowCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	clock        clock.Clock
	location     *time.Location
	out          io.Writer
}

// NewIntervalShowCommand creates a new interval show command handler
func NewIntervalShowCommand(app *App) *IntervalShowCommand {
	return &IntervalShowCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		clock:        app.clock,
		location:     app.location(),
		out:          app.out,
	}
}

// Execute runs the interval show command
func (c *IntervalShowCommand) Execute(ctx context.Context, args []string) error {
	intervalID, err := singleIntervalID("interval show", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.GetInterval(ctx, intervalID)
	if err != nil {
		return c.errorHandler.Handle("show interval", err)
	}

	interval := session.Interval
	fmt.Fprintf(c.out, "Interval %d of task %d: %s\n", interval.ID, session.Task.ID, session.Task.Name)
	fmt.Fprintf(c.out, "  %s\n", c.describe(interval))
	fmt.Fprintf(c.out, "  Length: %s\n", services.FormatDuration(interval.Duration(c.clock.Now())))
	return nil
}

// describe renders e.g. "paused, 2024-05-20 08:00 to 2024-05-20 08:25"
func (c *IntervalShowCommand) describe(interval *domain.Interval) string {
	start := interval.StartTime.In(c.location).Format(intervalTimeLayout)
	if interval.IsOpen() {
		return "running since " + start
	}
	state := strings.ToLower(strings.ReplaceAll(string(interval.State), "_", " "))
	end := interval.EndTime.In(c.location).Format(intervalTimeLayout)
	return fmt.Sprintf("%s, %s to %s", state, start, end)
}

// IntervalDeleteCommand removes one interval
type IntervalDeleteCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewIntervalDeleteCommand creates a new interval delete command handler
func NewIntervalDeleteCommand(app *App) *IntervalDeleteCommand {
	return &IntervalDeleteCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the interval delete command
func (c *IntervalDeleteCommand) Execute(ctx context.Context, args []string) error {
	intervalID, err := singleIntervalID("interval delete", args)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	session, err := c.businessAPI.DeleteInterval(ctx, intervalID)
	if err != nil {
		return c.errorHandler.Handle("delete interval", err)
	}
	fmt.Fprintf(c.out, "Deleted interval %d of task %d: %s (%s total)\n",
		session.Interval.ID, session.Task.ID, session.Task.Name, services.FormatDuration(session.Elapsed))
	return nil
}
