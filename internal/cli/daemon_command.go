package cli

import (
	"context"
	"fmt"
	"io"

	"worklog/internal/api"
	"worklog/internal/config"
	"worklog/internal/logging"
	"worklog/internal/scheduler"
)

const (
	autoEndJobName   = "autoend"
	retentionJobName = "retention"
)

// DaemonCommand runs the background jobs on their schedules until ctx is cancelled
type DaemonCommand struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewDaemonCommand creates a new daemon command handler
func NewDaemonCommand(app *App) *DaemonCommand {
	return &DaemonCommand{
		businessAPI:  app.businessAPI,
		config:       app.config,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute runs the daemon command
func (c *DaemonCommand) Execute(ctx context.Context, args []string) error {
	s, err := c.schedule()
	if err != nil {
		return c.errorHandler.Handle("start daemon", err)
	}
	if len(s.Entries()) == 0 {
		fmt.Fprintln(c.out, "No jobs enabled, nothing to do")
		return nil
	}

	s.Start()
	fmt.Fprintf(c.out, "Running %d scheduled jobs\n", len(s.Entries()))
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), c.config.Application.Timeout)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		logging.Errorf("daemon stopped before jobs finished: %v\n", err)
	}
	fmt.Fprintln(c.out, "Stopped")
	return nil
}

// schedule builds a scheduler holding every enabled job
func (c *DaemonCommand) schedule() (*scheduler.Scheduler, error) {
	loc, err := c.config.Location()
	if err != nil {
		return nil, err
	}
	s := scheduler.New(loc, c.config.Application.Timeout)

	for _, job := range c.businessAPI.Jobs() {
		spec, enabled, err := c.specFor(job.Name())
		if err != nil {
			return nil, err
		}
		if !enabled {
			logging.Debugf("job %s disabled\n", job.Name())
			continue
		}
		if _, err := s.Register(spec, job); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *DaemonCommand) specFor(name string) (string, bool, error) {
	jobs := c.config.Jobs
	switch name {
	case autoEndJobName:
		if !jobs.AutoEndEnabled {
			return "", false, nil
		}
		spec, err := scheduler.DailyAt(jobs.AutoEndCutoff)
		return spec, true, err
	case retentionJobName:
		return jobs.RetentionCron, jobs.RetentionEnabled, nil
	}
	return "", false, fmt.Errorf("no schedule configured for job %s", name)
}
