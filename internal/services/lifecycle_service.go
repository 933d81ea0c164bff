package services

import (
	"context"
	"fmt"

	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository"
)

// lifecycleServiceImpl implements the LifecycleService interface
type lifecycleServiceImpl struct {
	store repository.Store
	clock clock.Clock
	locks *taskLocks
}

// NewLifecycleService creates a new LifecycleService instance
func NewLifecycleService(store repository.Store, clk clock.Clock) LifecycleService {
	return &lifecycleServiceImpl{
		store: store,
		clock: clk,
		locks: newTaskLocks(),
	}
}

// withTask loads the task and runs fn while holding its lock
func (s *lifecycleServiceImpl) withTask(ctx context.Context, taskID int64, fn func(task *domain.Task) (*domain.Interval, error)) (*domain.Interval, error) {
	unlock := s.locks.lock(taskID)
	defer unlock()

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return fn(task)
}

// Start opens a new ONGOING interval. It fails if one is already open.
func (s *lifecycleServiceImpl) Start(ctx context.Context, taskID int64) (*domain.Interval, error) {
	return s.withTask(ctx, taskID, func(task *domain.Task) (*domain.Interval, error) {
		return s.start(ctx, task)
	})
}

func (s *lifecycleServiceImpl) start(ctx context.Context, task *domain.Task) (*domain.Interval, error) {
	if err := s.ensureNothingOpen(ctx, task.ID); err != nil {
		return nil, err
	}

	interval := domain.NewInterval(task.ID, s.clock.Now())
	if err := s.store.CreateInterval(ctx, &interval); err != nil {
		return nil, err
	}

	logging.Debugf("task %d (%s): started interval %d\n", task.ID, task.Name, interval.ID)
	return &interval, nil
}

func (s *lifecycleServiceImpl) ensureNothingOpen(ctx context.Context, taskID int64) error {
	_, err := s.store.FindOpenInterval(ctx, taskID)
	switch {
	case err == nil:
		return errors.NewIntervalAlreadyOpenError(taskID)
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return nil
	default:
		return err
	}
}

// Stop closes the open interval as USER_STOPPED
func (s *lifecycleServiceImpl) Stop(ctx context.Context, taskID int64) (*domain.Interval, error) {
	return s.withTask(ctx, taskID, func(task *domain.Task) (*domain.Interval, error) {
		return s.closeOpen(ctx, task, domain.StateUserStopped)
	})
}

// Pause closes the open interval as PAUSED so it can be resumed later
func (s *lifecycleServiceImpl) Pause(ctx context.Context, taskID int64) (*domain.Interval, error) {
	return s.withTask(ctx, taskID, func(task *domain.Task) (*domain.Interval, error) {
		return s.closeOpen(ctx, task, domain.StatePaused)
	})
}

func (s *lifecycleServiceImpl) closeOpen(ctx context.Context, task *domain.Task, state domain.IntervalState) (*domain.Interval, error) {
	open, err := s.store.FindOpenInterval(ctx, task.ID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewNoOpenIntervalError(task.ID)
		}
		return nil, err
	}

	end := open.ClosingTime(s.clock.Now())
	closed, err := s.store.CloseInterval(ctx, open.ID, end, state)
	if err != nil {
		return nil, err
	}
	if !closed {
		// closed elsewhere since we looked, e.g. by the auto-end job
		return nil, errors.NewNoOpenIntervalError(task.ID)
	}

	open.EndTime = &end
	open.State = state
	logging.Debugf("task %d (%s): interval %d closed as %s after %s\n", task.ID, task.Name, open.ID, state, open.Duration(end))
	return open, nil
}

// Resume finalises the latest PAUSED interval as USER_STOPPED and starts a new one
func (s *lifecycleServiceImpl) Resume(ctx context.Context, taskID int64) (*domain.Interval, error) {
	return s.withTask(ctx, taskID, func(task *domain.Task) (*domain.Interval, error) {
		paused, err := s.store.FindLatestInState(ctx, task.ID, domain.StatePaused)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				return nil, errors.NewNoPausedIntervalError(task.ID)
			}
			return nil, err
		}
		if err := s.ensureNothingOpen(ctx, task.ID); err != nil {
			return nil, err
		}

		if err := s.store.UpdateIntervalState(ctx, paused.ID, domain.StateUserStopped); err != nil {
			return nil, err
		}

		interval, err := s.start(ctx, task)
		if err != nil {
			// leave the task resumable
			if restoreErr := s.store.UpdateIntervalState(ctx, paused.ID, domain.StatePaused); restoreErr != nil {
				logging.Errorf("task %d: could not restore paused interval %d: %v\n", task.ID, paused.ID, restoreErr)
			}
			return nil, err
		}
		return interval, nil
	})
}

// Status returns the most recent interval of the task
func (s *lifecycleServiceImpl) Status(ctx context.Context, taskID int64) (*domain.Interval, error) {
	return s.withTask(ctx, taskID, func(task *domain.Task) (*domain.Interval, error) {
		intervals, err := s.store.FindIntervalsForTask(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		if len(intervals) == 0 {
			return nil, errors.NewIntervalNotFoundError(fmt.Sprintf("latest interval of task %d", task.ID))
		}
		return intervals[len(intervals)-1], nil
	})
}

// GetInterval returns one interval by ID
func (s *lifecycleServiceImpl) GetInterval(ctx context.Context, intervalID int64) (*domain.Interval, error) {
	return s.store.GetInterval(ctx, intervalID)
}

// DeleteInterval removes one interval. Deleting the open interval leaves the task free to start again.
func (s *lifecycleServiceImpl) DeleteInterval(ctx context.Context, intervalID int64) (*domain.Interval, error) {
	interval, err := s.store.GetInterval(ctx, intervalID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(interval.TaskID)
	defer unlock()

	if err := s.store.DeleteInterval(ctx, interval.ID); err != nil {
		return nil, err
	}
	logging.Debugf("task %d: deleted %s interval %d\n", interval.TaskID, interval.State, interval.ID)
	return interval, nil
}
