package services

import (
	"context"
	"sync"
	"time"

	"worklog/internal/clock"
	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository"

	"github.com/google/uuid"
)

// RetentionJob purges tasks, intervals and users older than the retention period
type RetentionJob struct {
	store     repository.Store
	users     UserService
	clock     clock.Clock
	retention time.Duration
	running   sync.Mutex
}

// NewRetentionJob creates the retention job
func NewRetentionJob(store repository.Store, users UserService, clk clock.Clock, retention time.Duration) *RetentionJob {
	return &RetentionJob{
		store:     store,
		users:     users,
		clock:     clk,
		retention: retention,
	}
}

// Name identifies the job to the scheduler
func (j *RetentionJob) Name() string {
	return "retention"
}

// Run performs one cleanup pass
func (j *RetentionJob) Run(ctx context.Context) error {
	_, err := j.Execute(ctx)
	return err
}

// Execute deletes, in order, old tasks, old intervals and old users.
// The first failing step aborts the run with a CleanupFailed error naming it.
// Rows removed by someone else in the meantime are skipped.
func (j *RetentionJob) Execute(ctx context.Context) (*CleanupResult, error) {
	if !j.running.TryLock() {
		logging.Debugf("retention: previous run still in progress, skipping\n")
		return &CleanupResult{Skipped: true}, nil
	}
	defer j.running.Unlock()

	result := &CleanupResult{
		RunID:  uuid.NewString(),
		Cutoff: j.clock.Now().Add(-j.retention),
	}

	if err := j.cleanupTasks(ctx, result); err != nil {
		return result, errors.NewCleanupFailedError(errors.SubsystemTasks, err)
	}

	removed, err := j.store.DeleteIntervalsStartedBefore(ctx, result.Cutoff)
	if err != nil {
		return result, errors.NewCleanupFailedError(errors.SubsystemIntervals, err)
	}
	result.IntervalsDeleted += removed

	if err := j.cleanupUsers(ctx, result); err != nil {
		return result, errors.NewCleanupFailedError(errors.SubsystemUsers, err)
	}

	logging.Infof("retention %s: removed %d tasks, %d intervals, %d users created before %s\n",
		result.RunID, result.TasksDeleted, result.IntervalsDeleted, result.UsersDeleted, result.Cutoff.Format(time.RFC3339))
	return result, nil
}

func (j *RetentionJob) cleanupTasks(ctx context.Context, result *CleanupResult) error {
	tasks, err := j.store.FindTasksCreatedBefore(ctx, result.Cutoff)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		removed, err := deleteTaskCascade(ctx, j.store, task.ID)
		result.IntervalsDeleted += removed
		if err != nil {
			return err
		}
		result.TasksDeleted++
	}
	return nil
}

func (j *RetentionJob) cleanupUsers(ctx context.Context, result *CleanupResult) error {
	users, err := j.store.FindUsersCreatedBefore(ctx, result.Cutoff)
	if err != nil {
		return err
	}
	for _, user := range users {
		err := j.users.DeleteUser(ctx, user.Username)
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		result.UsersDeleted++
	}
	return nil
}
