package api

import (
	"context"
	stderrors "errors"
	"time"

	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/services"
)

// TaskSession is a task together with the interval an operation touched
type TaskSession struct {
	Task     *domain.Task
	Interval *domain.Interval
	// Elapsed is the task's total tracked time at the moment of the call
	Elapsed time.Duration
}

// TaskDetails is a task with its owner and total tracked time
type TaskDetails struct {
	Task    *domain.Task
	Owner   *domain.User
	Elapsed time.Duration
}

// BusinessAPI is the request layer the CLI drives
type BusinessAPI interface {
	// ========== Users ==========
	CreateUser(ctx context.Context, username, displayName, email string) (*domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, username, displayName, email string) (*domain.User, error)
	ResetUser(ctx context.Context, username string) (*services.ResetResult, error)
	DeleteUser(ctx context.Context, username string) error

	// ========== Tasks ==========
	CreateTask(ctx context.Context, username, name, description string) (*domain.Task, error)
	GetTask(ctx context.Context, taskID int64) (*TaskDetails, error)
	ListTasks(ctx context.Context, username string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, taskID int64, name string, description *string) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error

	// ========== Intervals ==========
	// GetInterval returns the interval with its task
	GetInterval(ctx context.Context, intervalID int64) (*TaskSession, error)
	// DeleteInterval returns the removed interval with its task and the task's new total
	DeleteInterval(ctx context.Context, intervalID int64) (*TaskSession, error)

	// ========== Lifecycle ==========
	StartTask(ctx context.Context, taskID int64) (*TaskSession, error)
	StopTask(ctx context.Context, taskID int64) (*TaskSession, error)
	PauseTask(ctx context.Context, taskID int64) (*TaskSession, error)
	ResumeTask(ctx context.Context, taskID int64) (*TaskSession, error)
	// GetStatus returns the task with its most recent interval
	GetStatus(ctx context.Context, taskID int64) (*TaskSession, error)

	// ========== Durations ==========
	GetElapsed(ctx context.Context, taskID int64) (time.Duration, error)
	GetTotalEffort(ctx context.Context, username string, r domain.TimeRange) (time.Duration, error)
	GetReport(ctx context.Context, req services.ReportRequest) (*services.Report, error)

	// ========== Jobs ==========
	RunAutoEnd(ctx context.Context) (*services.AutoEndResult, error)
	RunCleanup(ctx context.Context) (*services.CleanupResult, error)
	Jobs() []Job
}

// Job is a background job the daemon schedules
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{services: container}
}

// ========== Users ==========

func (b *businessAPIImpl) CreateUser(ctx context.Context, username, displayName, email string) (*domain.User, error) {
	return b.services.Users.CreateUser(ctx, username, displayName, email)
}

func (b *businessAPIImpl) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return b.services.Users.GetUser(ctx, username)
}

func (b *businessAPIImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return b.services.Users.ListUsers(ctx)
}

func (b *businessAPIImpl) UpdateUser(ctx context.Context, username, displayName, email string) (*domain.User, error) {
	return b.services.Users.UpdateUser(ctx, username, displayName, email)
}

func (b *businessAPIImpl) ResetUser(ctx context.Context, username string) (*services.ResetResult, error) {
	return b.services.Users.ResetUser(ctx, username)
}

func (b *businessAPIImpl) DeleteUser(ctx context.Context, username string) error {
	return b.services.Users.DeleteUser(ctx, username)
}

// ========== Tasks ==========

func (b *businessAPIImpl) CreateTask(ctx context.Context, username, name, description string) (*domain.Task, error) {
	return b.services.Tasks.CreateTask(ctx, username, name, description)
}

func (b *businessAPIImpl) GetTask(ctx context.Context, taskID int64) (*TaskDetails, error) {
	task, err := b.services.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	owner, err := b.services.Users.GetUserByID(ctx, task.UserID)
	if err != nil {
		return nil, err
	}
	elapsed, err := b.trackedSoFar(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskDetails{Task: task, Owner: owner, Elapsed: elapsed}, nil
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, username string) ([]*domain.Task, error) {
	return b.services.Tasks.ListTasks(ctx, username)
}

func (b *businessAPIImpl) UpdateTask(ctx context.Context, taskID int64, name string, description *string) (*domain.Task, error) {
	return b.services.Tasks.UpdateTask(ctx, taskID, name, description)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, taskID int64) error {
	return b.services.Tasks.DeleteTask(ctx, taskID)
}

// ========== Intervals ==========

func (b *businessAPIImpl) GetInterval(ctx context.Context, intervalID int64) (*TaskSession, error) {
	interval, err := b.services.Lifecycle.GetInterval(ctx, intervalID)
	if err != nil {
		return nil, err
	}
	return b.decorate(ctx, interval)
}

func (b *businessAPIImpl) DeleteInterval(ctx context.Context, intervalID int64) (*TaskSession, error) {
	interval, err := b.services.Lifecycle.DeleteInterval(ctx, intervalID)
	if err != nil {
		return nil, err
	}
	return b.decorate(ctx, interval)
}

// ========== Lifecycle ==========

func (b *businessAPIImpl) StartTask(ctx context.Context, taskID int64) (*TaskSession, error) {
	return b.session(ctx, taskID, b.services.Lifecycle.Start)
}

func (b *businessAPIImpl) StopTask(ctx context.Context, taskID int64) (*TaskSession, error) {
	return b.session(ctx, taskID, b.services.Lifecycle.Stop)
}

func (b *businessAPIImpl) PauseTask(ctx context.Context, taskID int64) (*TaskSession, error) {
	return b.session(ctx, taskID, b.services.Lifecycle.Pause)
}

func (b *businessAPIImpl) ResumeTask(ctx context.Context, taskID int64) (*TaskSession, error) {
	return b.session(ctx, taskID, b.services.Lifecycle.Resume)
}

func (b *businessAPIImpl) GetStatus(ctx context.Context, taskID int64) (*TaskSession, error) {
	return b.session(ctx, taskID, b.services.Lifecycle.Status)
}

// session runs a lifecycle operation and decorates its interval with the task and total
func (b *businessAPIImpl) session(ctx context.Context, taskID int64, op func(context.Context, int64) (*domain.Interval, error)) (*TaskSession, error) {
	interval, err := op(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return b.decorate(ctx, interval)
}

// decorate attaches the interval's task and the task's current total
func (b *businessAPIImpl) decorate(ctx context.Context, interval *domain.Interval) (*TaskSession, error) {
	task, err := b.services.Tasks.GetTask(ctx, interval.TaskID)
	if err != nil {
		return nil, err
	}
	elapsed, err := b.trackedSoFar(ctx, interval.TaskID)
	if err != nil {
		return nil, err
	}

	return &TaskSession{Task: task, Interval: interval, Elapsed: elapsed}, nil
}

// trackedSoFar is ElapsedForTask with a task that has no intervals counting as zero
func (b *businessAPIImpl) trackedSoFar(ctx context.Context, taskID int64) (time.Duration, error) {
	elapsed, err := b.services.Durations.ElapsedForTask(ctx, taskID)
	if stderrors.Is(err, errors.ErrNoIntervals) {
		return 0, nil
	}
	return elapsed, err
}

// ========== Durations ==========

func (b *businessAPIImpl) GetElapsed(ctx context.Context, taskID int64) (time.Duration, error) {
	return b.services.Durations.ElapsedForTask(ctx, taskID)
}

func (b *businessAPIImpl) GetTotalEffort(ctx context.Context, username string, r domain.TimeRange) (time.Duration, error) {
	return b.services.Durations.TotalEffort(ctx, username, r)
}

func (b *businessAPIImpl) GetReport(ctx context.Context, req services.ReportRequest) (*services.Report, error) {
	return b.services.Durations.Report(ctx, req)
}

// ========== Jobs ==========

func (b *businessAPIImpl) RunAutoEnd(ctx context.Context) (*services.AutoEndResult, error) {
	return b.services.AutoEnd.Execute(ctx)
}

func (b *businessAPIImpl) RunCleanup(ctx context.Context) (*services.CleanupResult, error) {
	return b.services.Retention.Execute(ctx)
}

// Jobs returns the auto-end and retention jobs, in that order
func (b *businessAPIImpl) Jobs() []Job {
	return []Job{b.services.AutoEnd, b.services.Retention}
}
