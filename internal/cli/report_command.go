package cli

import (
	"context"
	"fmt"
	"io"

	"worklog/internal/errors"
	"worklog/internal/services"
	"worklog/internal/validation"
)

// ReportCommand prints per-task totals or the raw intervals of a user within a range
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "report", "usage: worklog report <username> [--from time] [--to time] [--sort duration|start_time] [--output duration|interval]")
	}
	r, err := c.app.resolveRange(c.app.options.From, c.app.options.To)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	report, err := c.app.businessAPI.GetReport(ctx, services.ReportRequest{
		Username: args[0],
		Range:    r,
		SortKey:  c.sortKey(),
		Output:   c.output(),
	})
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}

	if len(report.Lines) == 0 {
		fmt.Fprintf(c.out, "Nothing tracked for %s in this range\n", report.Username)
		return nil
	}
	for _, line := range report.Lines {
		fmt.Fprintln(c.out, line)
	}
	fmt.Fprintf(c.out, "Total: %s\n", services.FormatDuration(report.Total))
	return nil
}

// sortKey falls back to the configured default sort
func (c *ReportCommand) sortKey() string {
	if c.app.options.Sort != "" {
		return c.app.options.Sort
	}
	if c.app.config != nil && c.app.config.Reporting.DefaultSort != "" {
		return c.app.config.Reporting.DefaultSort
	}
	return validation.SortByDuration
}

func (c *ReportCommand) output() string {
	if c.app.options.Output != "" {
		return c.app.options.Output
	}
	return validation.OutputDuration
}
