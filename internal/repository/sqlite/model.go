package sqlite

import "database/sql"

// userRow mirrors a row of the users table
type userRow struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string
	CreatedAt   int64
}

// taskRow mirrors a row of the tasks table
type taskRow struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CreatedAt   int64
}

// intervalRow mirrors a row of the intervals table.
// Times are unix nanoseconds; EndTime is NULL while the interval is open.
type intervalRow struct {
	ID        int64
	TaskID    int64
	StartTime int64
	EndTime   sql.NullInt64
	State     string
}
