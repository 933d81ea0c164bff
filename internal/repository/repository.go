package repository

import (
	"context"
	"time"

	"worklog/internal/domain"
)

// IntervalStore persists task intervals.
//
// Lookups of a single interval return a not found AppError when nothing
// matches. Implementations must reject a second open interval for a task
// with an IntervalAlreadyOpen error.
type IntervalStore interface {
	CreateInterval(ctx context.Context, interval *domain.Interval) error
	GetInterval(ctx context.Context, id int64) (*domain.Interval, error)

	// FindOpenInterval returns the most recent interval of the task without an end time
	FindOpenInterval(ctx context.Context, taskID int64) (*domain.Interval, error)
	// FindLatestInState returns the most recent interval of the task in the given state
	FindLatestInState(ctx context.Context, taskID int64, state domain.IntervalState) (*domain.Interval, error)
	// FindIntervalsForTask returns every interval of the task ordered by start time
	FindIntervalsForTask(ctx context.Context, taskID int64) ([]*domain.Interval, error)
	// FindIntervalsForUserInRange returns the user's intervals that overlap [start, end), ordered by start time
	FindIntervalsForUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Interval, error)
	// FindOngoingBefore returns open ONGOING intervals that started before t
	FindOngoingBefore(ctx context.Context, t time.Time) ([]*domain.Interval, error)

	// CloseInterval sets the end time and state of an open interval.
	// It reports false when the interval was already closed or does not exist.
	CloseInterval(ctx context.Context, id int64, endTime time.Time, state domain.IntervalState) (bool, error)
	UpdateIntervalState(ctx context.Context, id int64, state domain.IntervalState) error

	DeleteInterval(ctx context.Context, id int64) error
	DeleteIntervalsForTask(ctx context.Context, taskID int64) (int64, error)
	DeleteIntervalsStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// SumOverlap totals the part of each of the user's intervals that falls
	// inside [start, end], measuring open intervals up to now.
	SumOverlap(ctx context.Context, userID int64, start, end, now time.Time) (time.Duration, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasksByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	// UpdateTask rewrites the name and description of an existing task
	UpdateTask(ctx context.Context, task *domain.Task) error
	FindTasksCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListUsers returns every user ordered by username
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateUser rewrites the display name and email of an existing user
	UpdateUser(ctx context.Context, user *domain.User) error
	FindUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Store is the full persistence contract used by the services.
type Store interface {
	IntervalStore
	TaskStore
	UserStore

	Close() error
}
