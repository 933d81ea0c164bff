package sqlite

import (
	"worklog/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const (
	userColumns     = "id, username, display_name, email, created_at"
	taskColumns     = "id, user_id, name, description, created_at"
	intervalColumns = "id, task_id, start_time, end_time, state"
)

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*domain.User, error) {
	var row userRow
	if err := scanner.Scan(&row.ID, &row.Username, &row.DisplayName, &row.Email, &row.CreatedAt); err != nil {
		return nil, err
	}
	return userMapper{}.FromRow(row), nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*domain.Task, error) {
	var row taskRow
	if err := scanner.Scan(&row.ID, &row.UserID, &row.Name, &row.Description, &row.CreatedAt); err != nil {
		return nil, err
	}
	return taskMapper{}.FromRow(row), nil
}

// ScanInterval scans a single interval from a database row
func ScanInterval(scanner Scanner) (*domain.Interval, error) {
	var row intervalRow
	if err := scanner.Scan(&row.ID, &row.TaskID, &row.StartTime, &row.EndTime, &row.State); err != nil {
		return nil, err
	}
	return intervalMapper{}.FromRow(row)
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*domain.User, error) {
	return scanAll(rows, ScanUser)
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	return scanAll(rows, ScanTask)
}

// ScanIntervals scans multiple intervals from database rows
func ScanIntervals(rows Rows) ([]*domain.Interval, error) {
	return scanAll(rows, ScanInterval)
}

func scanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
