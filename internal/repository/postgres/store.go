// Package postgres implements repository.Store on PostgreSQL through pgx.
//
// The schema mirrors the SQLite one: times are BIGINT unix nanoseconds so
// SumOverlap performs the same integer arithmetic as the in-process engine,
// and a partial unique index allows one open interval per task.
package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

var _ repository.Store = (*Store)(nil)

// Store is a PostgreSQL-backed repository.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to dsn, creates the schema if needed and returns a Store.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.NewStoreError("connect postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStoreError("ping postgres", err)
	}

	s := NewFromPool(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStoreError("ensure schema", err)
	}
	return s, nil
}

// NewFromPool wraps an existing pool.
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the tables and indexes if they don't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id           BIGSERIAL PRIMARY KEY,
			username     TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL DEFAULT '',
			email        TEXT NOT NULL DEFAULT '',
			created_at   BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id          BIGSERIAL PRIMARY KEY,
			user_id     BIGINT NOT NULL REFERENCES users(id),
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at)`,
		`CREATE TABLE IF NOT EXISTS intervals (
			id         BIGSERIAL PRIMARY KEY,
			task_id    BIGINT NOT NULL REFERENCES tasks(id),
			start_time BIGINT NOT NULL,
			end_time   BIGINT,
			state      TEXT NOT NULL CHECK (state IN ('ONGOING', 'PAUSED', 'USER_STOPPED', 'AUTO_STOPPED', 'UNEXPECTEDLY_STOPPED')),
			CHECK (end_time IS NULL OR end_time >= start_time)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_intervals_open_task ON intervals(task_id) WHERE end_time IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_intervals_task_start ON intervals(task_id, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_intervals_start ON intervals(start_time)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

func fromNullNanos(ns *int64) *time.Time {
	if ns == nil {
		return nil
	}
	t := fromNanos(*ns)
	return &t
}

func queryOne[T any](ctx context.Context, s *Store, scan func(pgx.Row) (*T, error), notFound error, query string, args ...any) (*T, error) {
	result, err := scan(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, errors.NewStoreError("query row", err)
	}
	return result, nil
}

func queryAll[T any](ctx context.Context, s *Store, scan func(pgx.Row) (*T, error), operation string, query string, args ...any) ([]*T, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError(operation, err)
	}
	defer rows.Close()

	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, errors.NewStoreError(operation, err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError(operation, err)
	}
	return results, nil
}

func (s *Store) execAffected(ctx context.Context, operation string, query string, args ...any) (int64, error) {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.NewStoreError(operation, err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) execOne(ctx context.Context, operation string, notFound error, query string, args ...any) error {
	n, err := s.execAffected(ctx, operation, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

const (
	userColumns     = "id, username, display_name, email, created_at"
	taskColumns     = "id, user_id, name, description, created_at"
	intervalColumns = "id, task_id, start_time, end_time, state"
)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var created int64
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &created); err != nil {
		return nil, err
	}
	u.CreatedAt = fromNanos(created)
	return &u, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var created int64
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &created); err != nil {
		return nil, err
	}
	t.CreatedAt = fromNanos(created)
	return &t, nil
}

func scanInterval(row pgx.Row) (*domain.Interval, error) {
	var i domain.Interval
	var start int64
	var end *int64
	var state string
	if err := row.Scan(&i.ID, &i.TaskID, &start, &end, &state); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseIntervalState(state)
	if err != nil {
		return nil, err
	}
	i.StartTime = fromNanos(start)
	i.EndTime = fromNullNanos(end)
	i.State = parsed
	return &i, nil
}

// CreateUser inserts a user; a taken username is a conflict.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, display_name, email, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Username, user.DisplayName, user.Email, nanos(user.CreatedAt)).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("user", user.Username)
		}
		return errors.NewStoreError("create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return queryOne(ctx, s, scanUser, errors.NewUserNotFoundError(fmt.Sprintf("%d", id)),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return queryOne(ctx, s, scanUser, errors.NewUserNotFoundError(username),
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return queryAll(ctx, s, scanUser, "list users",
		`SELECT `+userColumns+` FROM users ORDER BY username`)
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	return s.execOne(ctx, "update user", errors.NewUserNotFoundError(user.Username),
		`UPDATE users SET display_name = $1, email = $2 WHERE id = $3`, user.DisplayName, user.Email, user.ID)
}

func (s *Store) FindUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.User, error) {
	return queryAll(ctx, s, scanUser, "find old users",
		`SELECT `+userColumns+` FROM users WHERE created_at < $1 ORDER BY id`, nanos(cutoff))
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete user", errors.NewUserNotFoundError(fmt.Sprintf("%d", id)),
		`DELETE FROM users WHERE id = $1`, id)
}

// CreateTask inserts a task.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		task.UserID, task.Name, task.Description, nanos(task.CreatedAt)).Scan(&task.ID)
	if err != nil {
		return errors.NewStoreError("create task", err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return queryOne(ctx, s, scanTask, errors.NewTaskNotFoundError(id),
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

func (s *Store) ListTasksByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return queryAll(ctx, s, scanTask, "list tasks",
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY name, id`, userID)
}

func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	return s.execOne(ctx, "update task", errors.NewTaskNotFoundError(task.ID),
		`UPDATE tasks SET name = $1, description = $2 WHERE id = $3`, task.Name, task.Description, task.ID)
}

func (s *Store) FindTasksCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error) {
	return queryAll(ctx, s, scanTask, "find old tasks",
		`SELECT `+taskColumns+` FROM tasks WHERE created_at < $1 ORDER BY id`, nanos(cutoff))
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete task", errors.NewTaskNotFoundError(id),
		`DELETE FROM tasks WHERE id = $1`, id)
}

// CreateInterval inserts an interval. A second open interval for the task
// violates idx_intervals_open_task and is reported as IntervalAlreadyOpen.
func (s *Store) CreateInterval(ctx context.Context, interval *domain.Interval) error {
	var end *int64
	if interval.EndTime != nil {
		ns := nanos(*interval.EndTime)
		end = &ns
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO intervals (task_id, start_time, end_time, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		interval.TaskID, nanos(interval.StartTime), end, string(interval.State)).Scan(&interval.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewIntervalAlreadyOpenError(interval.TaskID)
		}
		return errors.NewStoreError("create interval", err)
	}
	return nil
}

func (s *Store) GetInterval(ctx context.Context, id int64) (*domain.Interval, error) {
	return queryOne(ctx, s, scanInterval, errors.NewIntervalNotFoundError(fmt.Sprintf("%d", id)),
		`SELECT `+intervalColumns+` FROM intervals WHERE id = $1`, id)
}

func (s *Store) FindOpenInterval(ctx context.Context, taskID int64) (*domain.Interval, error) {
	return queryOne(ctx, s, scanInterval, errors.NewIntervalNotFoundError(fmt.Sprintf("open interval of task %d", taskID)), `
		SELECT `+intervalColumns+` FROM intervals
		WHERE task_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC, id DESC
		LIMIT 1`, taskID)
}

func (s *Store) FindLatestInState(ctx context.Context, taskID int64, state domain.IntervalState) (*domain.Interval, error) {
	return queryOne(ctx, s, scanInterval, errors.NewIntervalNotFoundError(fmt.Sprintf("%s interval of task %d", state, taskID)), `
		SELECT `+intervalColumns+` FROM intervals
		WHERE task_id = $1 AND state = $2
		ORDER BY start_time DESC, id DESC
		LIMIT 1`, taskID, string(state))
}

func (s *Store) FindIntervalsForTask(ctx context.Context, taskID int64) ([]*domain.Interval, error) {
	return queryAll(ctx, s, scanInterval, "find intervals for task", `
		SELECT `+intervalColumns+` FROM intervals
		WHERE task_id = $1
		ORDER BY start_time, id`, taskID)
}

func (s *Store) FindIntervalsForUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Interval, error) {
	return queryAll(ctx, s, scanInterval, "find intervals in range", `
		SELECT i.id, i.task_id, i.start_time, i.end_time, i.state
		FROM intervals i
		JOIN tasks t ON t.id = i.task_id
		WHERE t.user_id = $1
		  AND i.start_time < $2
		  AND (i.end_time IS NULL OR i.end_time > $3)
		ORDER BY i.start_time, i.id`, userID, nanos(end), nanos(start))
}

func (s *Store) FindOngoingBefore(ctx context.Context, t time.Time) ([]*domain.Interval, error) {
	return queryAll(ctx, s, scanInterval, "find ongoing intervals", `
		SELECT `+intervalColumns+` FROM intervals
		WHERE end_time IS NULL AND state = $1 AND start_time < $2
		ORDER BY start_time, id`, string(domain.StateOngoing), nanos(t))
}

// CloseInterval only touches intervals that are still open.
func (s *Store) CloseInterval(ctx context.Context, id int64, endTime time.Time, state domain.IntervalState) (bool, error) {
	n, err := s.execAffected(ctx, "close interval", `
		UPDATE intervals SET end_time = $1, state = $2
		WHERE id = $3 AND end_time IS NULL`, nanos(endTime), string(state), id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) UpdateIntervalState(ctx context.Context, id int64, state domain.IntervalState) error {
	return s.execOne(ctx, "update interval state", errors.NewIntervalNotFoundError(fmt.Sprintf("%d", id)),
		`UPDATE intervals SET state = $1 WHERE id = $2`, string(state), id)
}

func (s *Store) DeleteInterval(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete interval", errors.NewIntervalNotFoundError(fmt.Sprintf("%d", id)),
		`DELETE FROM intervals WHERE id = $1`, id)
}

func (s *Store) DeleteIntervalsForTask(ctx context.Context, taskID int64) (int64, error) {
	return s.execAffected(ctx, "delete intervals for task", `DELETE FROM intervals WHERE task_id = $1`, taskID)
}

func (s *Store) DeleteIntervalsStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.execAffected(ctx, "delete old intervals", `DELETE FROM intervals WHERE start_time < $1`, nanos(cutoff))
}

// SumOverlap clips and sums in SQL with GREATEST/LEAST over nanoseconds.
func (s *Store) SumOverlap(ctx context.Context, userID int64, start, end, now time.Time) (time.Duration, error) {
	var total int64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(GREATEST(0, LEAST(COALESCE(i.end_time, $1), $2) - GREATEST(i.start_time, $3))), 0)::BIGINT
		FROM intervals i
		JOIN tasks t ON t.id = i.task_id
		WHERE t.user_id = $4
		  AND i.start_time < $2
		  AND (i.end_time IS NULL OR i.end_time > $3)`,
		nanos(now), nanos(end), nanos(start), userID).Scan(&total)
	if err != nil {
		return 0, errors.NewStoreError("sum overlap", err)
	}
	return time.Duration(total), nil
}
