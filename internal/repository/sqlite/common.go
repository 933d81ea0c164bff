package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"worklog/internal/errors"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// HandleDatabaseError converts database errors to structured app errors.
// A query cut off by its context deadline is reported as a timeout.
func HandleDatabaseError(operation string, err error) error {
	return errors.NewStoreError(operation, err)
}

// HandleNoRowsError handles sql.ErrNoRows errors consistently
func HandleNoRowsError(err error, notFound error) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure
func IsUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
}

// ValidateRowsAffected checks if a database operation affected at least one row
func ValidateRowsAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// ExecuteWithLastInsertID executes a query and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithRowsAffected executes a query and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, notFound error, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	return ValidateRowsAffected(result, notFound)
}

// ExecuteCount executes a query and returns how many rows it affected
func ExecuteCount(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}
	return rows, nil
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, notFound error, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
