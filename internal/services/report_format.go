package services

import (
	"fmt"
	"sort"
	"time"

	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/validation"
)

// IntervalFormat controls how FormatIntervalList renders timestamps
type IntervalFormat struct {
	Layout      string
	RunningText string
	Location    *time.Location
}

// DefaultIntervalFormat renders "2006-01-02 15:04" in local time and
// "running" for open intervals
func DefaultIntervalFormat() IntervalFormat {
	return IntervalFormat{
		Layout:      "2006-01-02 15:04",
		RunningText: "running",
		Location:    time.Local,
	}
}

// GroupAndSort buckets intervals by task and totals the part of each
// interval inside r, measuring open intervals up to now.
//
// With sortKey "duration" the buckets are ordered by total descending, ties
// broken by task name and then ID. With "start_time" the intervals are
// ordered by start before bucketing and buckets keep first-appearance order.
// Tasks with nothing inside the range are left out.
func GroupAndSort(intervals []*domain.Interval, tasks map[int64]*domain.Task, sortKey string, r domain.TimeRange, now time.Time) ([]domain.TaskDuration, error) {
	if err := validation.NewReportValidator().ValidateSortKey(sortKey); err != nil {
		return nil, errors.NewInvalidInputError("sort", sortKey, "must be duration or start_time")
	}

	ordered := make([]*domain.Interval, len(intervals))
	copy(ordered, intervals)
	if sortKey == validation.SortByStartTime {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].StartTime.Before(ordered[j].StartTime)
		})
	}

	index := make(map[int64]int)
	var result []domain.TaskDuration
	for _, interval := range ordered {
		overlap := interval.Overlap(r.Start, r.End, now)
		pos, seen := index[interval.TaskID]
		if !seen {
			task := domain.Task{ID: interval.TaskID}
			if t, ok := tasks[interval.TaskID]; ok {
				task = *t
			}
			pos = len(result)
			index[interval.TaskID] = pos
			result = append(result, domain.TaskDuration{Task: task})
		}
		result[pos].Total += overlap
	}

	kept := result[:0]
	for _, td := range result {
		if td.Total > 0 {
			kept = append(kept, td)
		}
	}

	if sortKey == validation.SortByDuration {
		sort.SliceStable(kept, func(i, j int) bool {
			a, b := kept[i], kept[j]
			if a.Total != b.Total {
				return a.Total > b.Total
			}
			if a.Task.Name != b.Task.Name {
				return a.Task.Name < b.Task.Name
			}
			return a.Task.ID < b.Task.ID
		})
	}
	return kept, nil
}

// FormatDuration renders d as HH:MM. Hours may exceed 99; seconds are dropped.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// FormatDurationList renders "<name> - HH:MM" per task
func FormatDurationList(durations []domain.TaskDuration) []string {
	lines := make([]string, 0, len(durations))
	for _, td := range durations {
		lines = append(lines, fmt.Sprintf("%s - %s", td.Task.Name, FormatDuration(td.Total)))
	}
	return lines
}

// FormatIntervalList renders "<start> - <end> | <task name>" per interval
func FormatIntervalList(intervals []*domain.Interval, tasks map[int64]*domain.Task, format IntervalFormat) []string {
	loc := format.Location
	if loc == nil {
		loc = time.Local
	}

	lines := make([]string, 0, len(intervals))
	for _, interval := range intervals {
		end := format.RunningText
		if interval.EndTime != nil {
			end = interval.EndTime.In(loc).Format(format.Layout)
		}
		name := fmt.Sprintf("task %d", interval.TaskID)
		if task, ok := tasks[interval.TaskID]; ok {
			name = task.Name
		}
		lines = append(lines, fmt.Sprintf("%s - %s | %s", interval.StartTime.In(loc).Format(format.Layout), end, name))
	}
	return lines
}
