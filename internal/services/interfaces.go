package services

import (
	"context"
	"time"

	"worklog/internal/domain"
)

// ReportRequest selects the user, window and rendering of a report
type ReportRequest struct {
	Username string
	Range    domain.TimeRange
	SortKey  string // duration or start_time
	Output   string // duration or interval
}

// Report is a rendered report together with the data behind it
type Report struct {
	Username  string
	Range     domain.TimeRange
	Durations []domain.TaskDuration
	Intervals []*domain.Interval
	Total     time.Duration
	Lines     []string
}

// CleanupResult summarises one retention run
type CleanupResult struct {
	RunID            string
	Cutoff           time.Time
	TasksDeleted     int64
	IntervalsDeleted int64
	UsersDeleted     int64
	Skipped          bool
}

// AutoEndResult summarises one auto-end run
type AutoEndResult struct {
	RunID   string
	RanAt   time.Time
	Found   int
	Closed  int
	Skipped bool
}

// ResetResult summarises a user reset
type ResetResult struct {
	User             *domain.User
	TasksDeleted     int64
	IntervalsDeleted int64
}

// LifecycleService moves a task through start, pause, resume and stop.
// Every operation runs under a per-task lock.
type LifecycleService interface {
	Start(ctx context.Context, taskID int64) (*domain.Interval, error)
	Stop(ctx context.Context, taskID int64) (*domain.Interval, error)
	Pause(ctx context.Context, taskID int64) (*domain.Interval, error)
	Resume(ctx context.Context, taskID int64) (*domain.Interval, error)

	// Status returns the most recent interval of the task
	Status(ctx context.Context, taskID int64) (*domain.Interval, error)

	GetInterval(ctx context.Context, intervalID int64) (*domain.Interval, error)
	// DeleteInterval removes one interval under its task's lock and returns it
	DeleteInterval(ctx context.Context, intervalID int64) (*domain.Interval, error)
}

// DurationService answers how much time was spent
type DurationService interface {
	// ElapsedForTask sums every interval of the task, open ones up to now
	ElapsedForTask(ctx context.Context, taskID int64) (time.Duration, error)
	// TotalEffort sums the part of the user's intervals inside r
	TotalEffort(ctx context.Context, username string, r domain.TimeRange) (time.Duration, error)
	Report(ctx context.Context, req ReportRequest) (*Report, error)
}

// TaskService manages tasks
type TaskService interface {
	CreateTask(ctx context.Context, username, name, description string) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, username string) ([]*domain.Task, error)
	// UpdateTask renames the task and replaces its description.
	// An empty name keeps the current one and a nil description is left alone.
	UpdateTask(ctx context.Context, id int64, name string, description *string) (*domain.Task, error)
	// DeleteTask removes the task and all of its intervals
	DeleteTask(ctx context.Context, id int64) error
}

// UserService manages users
type UserService interface {
	CreateUser(ctx context.Context, username, displayName, email string) (*domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateUser changes the display name and email. Empty values keep the current ones.
	UpdateUser(ctx context.Context, username, displayName, email string) (*domain.User, error)
	// ResetUser removes all of the user's tasks and intervals but keeps the user
	ResetUser(ctx context.Context, username string) (*ResetResult, error)
	// DeleteUser removes the user with all of their tasks and intervals
	DeleteUser(ctx context.Context, username string) error
}
