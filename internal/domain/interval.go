package domain

import (
	"fmt"
	"time"
)

// IntervalState is the state recorded on an interval
type IntervalState string

const (
	StateOngoing             IntervalState = "ONGOING"
	StatePaused              IntervalState = "PAUSED"
	StateUserStopped         IntervalState = "USER_STOPPED"
	StateAutoStopped         IntervalState = "AUTO_STOPPED"
	StateUnexpectedlyStopped IntervalState = "UNEXPECTEDLY_STOPPED" // set only by manual correction
)

// IsValid reports whether s is one of the known states
func (s IntervalState) IsValid() bool {
	switch s {
	case StateOngoing, StatePaused, StateUserStopped, StateAutoStopped, StateUnexpectedlyStopped:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves s
func (s IntervalState) IsTerminal() bool {
	switch s {
	case StateUserStopped, StateAutoStopped, StateUnexpectedlyStopped:
		return true
	default:
		return false
	}
}

// ParseIntervalState converts a stored state string into an IntervalState
func ParseIntervalState(s string) (IntervalState, error) {
	state := IntervalState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("unknown interval state: %q", s)
	}
	return state, nil
}

// Interval is one contiguous segment of time spent on a task.
// EndTime is nil while the interval is open.
type Interval struct {
	ID        int64
	TaskID    int64
	StartTime time.Time
	EndTime   *time.Time
	State     IntervalState
}

// NewInterval creates an open, ongoing interval for the given task.
func NewInterval(taskID int64, startTime time.Time) Interval {
	return Interval{
		TaskID:    taskID,
		StartTime: startTime,
		State:     StateOngoing,
	}
}

// IsOpen returns true if the interval has no end time yet.
func (i Interval) IsOpen() bool {
	return i.EndTime == nil
}

// ClosingTime returns the end time to record when closing at now.
// A clock behind the start time never produces a negative interval.
func (i Interval) ClosingTime(now time.Time) time.Time {
	if now.Before(i.StartTime) {
		return i.StartTime
	}
	return now
}

// EffectiveEnd returns the end time, or now when the interval is still open.
func (i Interval) EffectiveEnd(now time.Time) time.Time {
	if i.EndTime == nil {
		return now
	}
	return *i.EndTime
}

// Duration returns the elapsed time of the interval, measuring open intervals up to now.
func (i Interval) Duration(now time.Time) time.Duration {
	d := i.EffectiveEnd(now).Sub(i.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Overlap returns the part of the interval that falls inside [rangeStart, rangeEnd].
// Open intervals run until now.
func (i Interval) Overlap(rangeStart, rangeEnd, now time.Time) time.Duration {
	start := i.StartTime
	if rangeStart.After(start) {
		start = rangeStart
	}
	end := i.EffectiveEnd(now)
	if rangeEnd.Before(end) {
		end = rangeEnd
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// IsValid checks if the interval has valid data.
func (i Interval) IsValid() bool {
	if i.TaskID <= 0 {
		return false
	}
	if i.StartTime.IsZero() {
		return false
	}
	if !i.State.IsValid() {
		return false
	}
	if i.EndTime != nil && i.EndTime.Before(i.StartTime) {
		return false
	}
	return true
}

// TimeRange is a reporting window.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// TaskDuration is the total time attributed to one task in a report.
type TaskDuration struct {
	Task  Task
	Total time.Duration
}
