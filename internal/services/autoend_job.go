package services

import (
	"context"
	"sync"

	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/logging"
	"worklog/internal/repository"

	"github.com/google/uuid"
)

// AutoEndJob closes intervals left running past the daily cutoff
type AutoEndJob struct {
	store   repository.IntervalStore
	clock   clock.Clock
	running sync.Mutex
}

// NewAutoEndJob creates the auto-end job
func NewAutoEndJob(store repository.IntervalStore, clk clock.Clock) *AutoEndJob {
	return &AutoEndJob{store: store, clock: clk}
}

// Name identifies the job to the scheduler
func (j *AutoEndJob) Name() string {
	return "autoend"
}

// Run closes every ONGOING interval as AUTO_STOPPED
func (j *AutoEndJob) Run(ctx context.Context) error {
	_, err := j.Execute(ctx)
	return err
}

// Execute is Run with a result. A run that overlaps another is skipped.
func (j *AutoEndJob) Execute(ctx context.Context) (*AutoEndResult, error) {
	if !j.running.TryLock() {
		logging.Debugf("autoend: previous run still in progress, skipping\n")
		return &AutoEndResult{Skipped: true}, nil
	}
	defer j.running.Unlock()

	result := &AutoEndResult{RunID: uuid.NewString(), RanAt: j.clock.Now()}

	intervals, err := j.store.FindOngoingBefore(ctx, result.RanAt)
	if err != nil {
		return result, err
	}
	result.Found = len(intervals)

	for _, interval := range intervals {
		closed, err := j.store.CloseInterval(ctx, interval.ID, interval.ClosingTime(result.RanAt), domain.StateAutoStopped)
		if err != nil {
			return result, err
		}
		if closed {
			result.Closed++
		}
	}

	logging.Infof("autoend %s: closed %d of %d running intervals\n", result.RunID, result.Closed, result.Found)
	return result, nil
}
