package sqlite

import (
	"database/sql"

	"worklog/internal/domain"
)

// userMapper converts between domain users and user rows.
type userMapper struct{}

func (userMapper) ToRow(u domain.User) userRow {
	return userRow{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   FormatTimeForDB(u.CreatedAt),
	}
}

func (userMapper) FromRow(r userRow) *domain.User {
	return &domain.User{
		ID:          r.ID,
		Username:    r.Username,
		DisplayName: r.DisplayName,
		Email:       r.Email,
		CreatedAt:   ParseTimeFromDB(r.CreatedAt),
	}
}

// taskMapper converts between domain tasks and task rows.
type taskMapper struct{}

func (taskMapper) ToRow(t domain.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   FormatTimeForDB(t.CreatedAt),
	}
}

func (taskMapper) FromRow(r taskRow) *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   ParseTimeFromDB(r.CreatedAt),
	}
}

// intervalMapper converts between domain intervals and interval rows.
type intervalMapper struct{}

func (intervalMapper) ToRow(i domain.Interval) intervalRow {
	row := intervalRow{
		ID:        i.ID,
		TaskID:    i.TaskID,
		StartTime: FormatTimeForDB(i.StartTime),
		State:     string(i.State),
	}
	if i.EndTime != nil {
		row.EndTime = sql.NullInt64{Int64: FormatTimeForDB(*i.EndTime), Valid: true}
	}
	return row
}

// FromRow fails when the stored state is not a known interval state.
func (intervalMapper) FromRow(r intervalRow) (*domain.Interval, error) {
	state, err := domain.ParseIntervalState(r.State)
	if err != nil {
		return nil, err
	}
	return &domain.Interval{
		ID:        r.ID,
		TaskID:    r.TaskID,
		StartTime: ParseTimeFromDB(r.StartTime),
		EndTime:   ParseNullTimeFromDB(r.EndTime),
		State:     state,
	}, nil
}
