package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"worklog/internal/clock"
	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/repository"
	"worklog/internal/validation"
)

// ReportOptions configures effort computation and report rendering
type ReportOptions struct {
	// NativeAggregate pushes TotalEffort into the store's SumOverlap query
	NativeAggregate bool
	Format          IntervalFormat
}

// DefaultReportOptions computes effort in-process with the default format
func DefaultReportOptions() ReportOptions {
	return ReportOptions{Format: DefaultIntervalFormat()}
}

// durationServiceImpl implements the DurationService interface
type durationServiceImpl struct {
	store           repository.Store
	clock           clock.Clock
	options         ReportOptions
	reportValidator *validation.ReportValidator
}

// NewDurationService creates a new DurationService instance
func NewDurationService(store repository.Store, clk clock.Clock, options ReportOptions) DurationService {
	return &durationServiceImpl{
		store:           store,
		clock:           clk,
		options:         options,
		reportValidator: validation.NewReportValidator(),
	}
}

// ElapsedForTask sums every segment of the task. Paused gaps are never covered.
func (s *durationServiceImpl) ElapsedForTask(ctx context.Context, taskID int64) (time.Duration, error) {
	if _, err := s.store.GetTask(ctx, taskID); err != nil {
		return 0, err
	}

	intervals, err := s.store.FindIntervalsForTask(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if len(intervals) == 0 {
		return 0, errors.NewNoIntervalsError(taskID)
	}

	now := s.clock.Now()
	var total time.Duration
	for _, interval := range intervals {
		total += interval.Duration(now)
	}
	return total, nil
}

// TotalEffort sums the overlap of each of the user's intervals with r
func (s *durationServiceImpl) TotalEffort(ctx context.Context, username string, r domain.TimeRange) (time.Duration, error) {
	if err := s.reportValidator.ValidateTimeRange(r.Start, r.End); err != nil {
		return 0, errors.NewValidationError("invalid time range", err)
	}

	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	if s.options.NativeAggregate {
		return s.store.SumOverlap(ctx, user.ID, r.Start, r.End, now)
	}

	intervals, err := s.store.FindIntervalsForUserInRange(ctx, user.ID, r.Start, r.End)
	if err != nil {
		return 0, err
	}
	var total time.Duration
	for _, interval := range intervals {
		total += interval.Overlap(r.Start, r.End, now)
	}
	return total, nil
}

// Report renders the user's activity inside the requested range
func (s *durationServiceImpl) Report(ctx context.Context, req ReportRequest) (*Report, error) {
	if err := s.reportValidator.ValidateReport(req.Range.Start, req.Range.End, req.SortKey, req.Output); err != nil {
		return nil, errors.NewValidationError("invalid report request", err)
	}

	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}

	intervals, err := s.store.FindIntervalsForUserInRange(ctx, user.ID, req.Range.Start, req.Range.End)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	now := s.clock.Now()
	durations, err := GroupAndSort(intervals, byID, req.SortKey, req.Range, now)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Username:  user.Username,
		Range:     req.Range,
		Durations: durations,
		Intervals: intervals,
	}
	for _, td := range durations {
		report.Total += td.Total
	}

	switch req.Output {
	case validation.OutputInterval:
		sort.SliceStable(report.Intervals, func(i, j int) bool {
			return report.Intervals[i].StartTime.Before(report.Intervals[j].StartTime)
		})
		report.Lines = FormatIntervalList(report.Intervals, byID, s.options.Format)
	default:
		report.Lines = FormatDurationList(durations)
	}
	return report, nil
}
