// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"worklog/internal/logging"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Job is a unit of background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler wraps a cron runner. Each job is skipped while its previous
// run is still in progress and panics are recovered and logged.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New creates a scheduler evaluating schedules in loc.
// Each job run gets a context bounded by timeout (zero means unbounded).
func New(loc *time.Location, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	l := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(parser),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Register schedules job on spec.
func (s *Scheduler) Register(spec string, job Job) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		s.runJob(job)
	})
	if err != nil {
		return 0, fmt.Errorf("schedule %s: %w", job.Name(), err)
	}
	logging.Debugf("scheduled %s at %q\n", job.Name(), spec)
	return id, nil
}

func (s *Scheduler) runJob(job Job) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := job.Run(ctx); err != nil {
		logging.Errorf("job %s failed: %v\n", job.Name(), err)
	}
}

// Entries returns the registered schedule entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ValidateSpec reports whether spec is a schedule Register accepts.
func ValidateSpec(spec string) error {
	_, err := parser.Parse(spec)
	return err
}

// DailyAt converts an "HH:MM" time of day into a cron spec.
func DailyAt(hhmm string) (string, error) {
	if len(hhmm) != len("15:04") {
		return "", fmt.Errorf("time of day must be HH:MM, got %q", hhmm)
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", fmt.Errorf("time of day must be HH:MM between 00:00 and 23:59, got %q", hhmm)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// cronLogger forwards cron's internal logging to the logging package.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debugf("cron: %s%s\n", msg, formatKeysAndValues(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Errorf("cron: %s: %v%s\n", msg, err, formatKeysAndValues(keysAndValues))
}

func formatKeysAndValues(keysAndValues []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
