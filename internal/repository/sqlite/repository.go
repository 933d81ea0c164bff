package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/repository"
	"worklog/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const dsnPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

var _ repository.Store = (*SQLiteRepository)(nil)

// SQLiteRepository implements repository.Store on top of modernc.org/sqlite
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithContext(context.Background(), dbPath)
}

// NewWithContext opens the database at dbPath and applies pending migrations
func NewWithContext(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath+"?"+dsnPragmas)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// a single connection serialises writers and keeps ":memory:" databases alive
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStoreError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateUser creates a new user
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *domain.User) error {
	row := userMapper{}.ToRow(*user)
	query := `
	INSERT INTO users (username, display_name, email, created_at)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, row.Username, row.DisplayName, row.Email, row.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewConflictError("user", user.Username)
		}
		return HandleDatabaseError("create user", err)
	}

	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", errors.NewUserNotFoundError(fmt.Sprintf("%d", id)), id)
}

// GetUserByUsername retrieves a user by its unique username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", errors.NewUserNotFoundError(username), username)
}

// ListUsers retrieves every user ordered by username
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username ASC`
	return QueryMultiple(ctx, r.db, query, ScanUsers, "users")
}

// UpdateUser updates the display name and email of a user
func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET display_name = ?, email = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, errors.NewUserNotFoundError(user.Username), user.DisplayName, user.Email, user.ID)
}

// FindUsersCreatedBefore lists users created strictly before cutoff
func (r *SQLiteRepository) FindUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE created_at < ? ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanUsers, "users", FormatTimeForDB(cutoff))
}

// DeleteUser deletes a user by ID
func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, errors.NewUserNotFoundError(fmt.Sprintf("%d", id)), id)
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	row := taskMapper{}.ToRow(*task)
	query := `
	INSERT INTO tasks (user_id, name, description, created_at)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, row.UserID, row.Name, row.Description, row.CreatedAt)
	if err != nil {
		return HandleDatabaseError("create task", err)
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", errors.NewTaskNotFoundError(id), id)
}

// ListTasksByUser retrieves the tasks owned by a user ordered by name
func (r *SQLiteRepository) ListTasksByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY name ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", userID)
}

// UpdateTask updates the name and description of a task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	query := `UPDATE tasks SET name = ?, description = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, errors.NewTaskNotFoundError(task.ID), task.Name, task.Description, task.ID)
}

// FindTasksCreatedBefore lists tasks created strictly before cutoff
func (r *SQLiteRepository) FindTasksCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE created_at < ? ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", FormatTimeForDB(cutoff))
}

// DeleteTask deletes a task by ID. Its intervals must be deleted first.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, errors.NewTaskNotFoundError(id), id)
}

// CreateInterval creates a new interval.
// A second open interval for the same task fails with IntervalAlreadyOpen.
func (r *SQLiteRepository) CreateInterval(ctx context.Context, interval *domain.Interval) error {
	row := intervalMapper{}.ToRow(*interval)
	query := `
	INSERT INTO intervals (task_id, start_time, end_time, state)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, row.TaskID, row.StartTime, row.EndTime, row.State)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewIntervalAlreadyOpenError(interval.TaskID)
		}
		return HandleDatabaseError("create interval", err)
	}

	interval.ID = id
	return nil
}

// GetInterval retrieves an interval by ID
func (r *SQLiteRepository) GetInterval(ctx context.Context, id int64) (*domain.Interval, error) {
	query := `SELECT ` + intervalColumns + ` FROM intervals WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanInterval, "interval", errors.NewIntervalNotFoundError(fmt.Sprintf("%d", id)), id)
}

// FindOpenInterval returns the most recent open interval of a task
func (r *SQLiteRepository) FindOpenInterval(ctx context.Context, taskID int64) (*domain.Interval, error) {
	query := `
	SELECT ` + intervalColumns + `
	FROM intervals
	WHERE task_id = ? AND end_time IS NULL
	ORDER BY start_time DESC, id DESC
	LIMIT 1`

	return QuerySingle(ctx, r.db, query, ScanInterval, "interval", errors.NewIntervalNotFoundError(fmt.Sprintf("open interval of task %d", taskID)), taskID)
}

// FindLatestInState returns the most recent interval of a task in the given state
func (r *SQLiteRepository) FindLatestInState(ctx context.Context, taskID int64, state domain.IntervalState) (*domain.Interval, error) {
	query := `
	SELECT ` + intervalColumns + `
	FROM intervals
	WHERE task_id = ? AND state = ?
	ORDER BY start_time DESC, id DESC
	LIMIT 1`

	notFound := errors.NewIntervalNotFoundError(fmt.Sprintf("%s interval of task %d", state, taskID))
	return QuerySingle(ctx, r.db, query, ScanInterval, "interval", notFound, taskID, string(state))
}

// FindIntervalsForTask returns all intervals of a task ordered by start time
func (r *SQLiteRepository) FindIntervalsForTask(ctx context.Context, taskID int64) ([]*domain.Interval, error) {
	query := `
	SELECT ` + intervalColumns + `
	FROM intervals
	WHERE task_id = ?
	ORDER BY start_time ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanIntervals, "intervals", taskID)
}

// FindIntervalsForUserInRange returns the user's intervals overlapping [start, end)
func (r *SQLiteRepository) FindIntervalsForUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Interval, error) {
	query := `
	SELECT i.id, i.task_id, i.start_time, i.end_time, i.state
	FROM intervals i
	JOIN tasks t ON t.id = i.task_id
	WHERE t.user_id = ?
	  AND i.start_time < ?
	  AND (i.end_time IS NULL OR i.end_time > ?)
	ORDER BY i.start_time ASC, i.id ASC`

	return QueryMultiple(ctx, r.db, query, ScanIntervals, "intervals", userID, FormatTimeForDB(end), FormatTimeForDB(start))
}

// FindOngoingBefore returns open ONGOING intervals started before t
func (r *SQLiteRepository) FindOngoingBefore(ctx context.Context, t time.Time) ([]*domain.Interval, error) {
	query := `
	SELECT ` + intervalColumns + `
	FROM intervals
	WHERE end_time IS NULL AND state = ? AND start_time < ?
	ORDER BY start_time ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanIntervals, "intervals", string(domain.StateOngoing), FormatTimeForDB(t))
}

// CloseInterval closes an open interval. It never overwrites an existing end time.
func (r *SQLiteRepository) CloseInterval(ctx context.Context, id int64, endTime time.Time, state domain.IntervalState) (bool, error) {
	query := `
	UPDATE intervals
	SET end_time = ?, state = ?
	WHERE id = ? AND end_time IS NULL`

	n, err := ExecuteCount(ctx, r.db, "close interval", query, FormatTimeForDB(endTime), string(state), id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateIntervalState changes only the state of an interval
func (r *SQLiteRepository) UpdateIntervalState(ctx context.Context, id int64, state domain.IntervalState) error {
	query := `UPDATE intervals SET state = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, errors.NewIntervalNotFoundError(fmt.Sprintf("%d", id)), string(state), id)
}

// DeleteInterval deletes an interval by ID
func (r *SQLiteRepository) DeleteInterval(ctx context.Context, id int64) error {
	query := `DELETE FROM intervals WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, errors.NewIntervalNotFoundError(fmt.Sprintf("%d", id)), id)
}

// DeleteIntervalsForTask deletes every interval of a task
func (r *SQLiteRepository) DeleteIntervalsForTask(ctx context.Context, taskID int64) (int64, error) {
	query := `DELETE FROM intervals WHERE task_id = ?`
	return ExecuteCount(ctx, r.db, "delete intervals for task", query, taskID)
}

// DeleteIntervalsStartedBefore deletes intervals whose start time is before cutoff
func (r *SQLiteRepository) DeleteIntervalsStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM intervals WHERE start_time < ?`
	return ExecuteCount(ctx, r.db, "delete old intervals", query, FormatTimeForDB(cutoff))
}

// SumOverlap computes the clipped total in the database.
// Arithmetic is on integer nanoseconds, matching domain.Interval.Overlap exactly.
func (r *SQLiteRepository) SumOverlap(ctx context.Context, userID int64, start, end, now time.Time) (time.Duration, error) {
	query := `
	SELECT COALESCE(SUM(MAX(0, MIN(COALESCE(i.end_time, ?), ?) - MAX(i.start_time, ?))), 0)
	FROM intervals i
	JOIN tasks t ON t.id = i.task_id
	WHERE t.user_id = ?
	  AND i.start_time < ?
	  AND (i.end_time IS NULL OR i.end_time > ?)`

	startNS, endNS := FormatTimeForDB(start), FormatTimeForDB(end)

	var total int64
	err := r.db.QueryRowContext(ctx, query, FormatTimeForDB(now), endNS, startNS, userID, endNS, startNS).Scan(&total)
	if err != nil {
		return 0, HandleDatabaseError("sum overlap", err)
	}
	return time.Duration(total), nil
}
