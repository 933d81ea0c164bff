package sqlite

import (
	"database/sql"
	"time"
)

// FormatTimeForDB converts a time.Time into the unix nanosecond integer stored in the database
func FormatTimeForDB(t time.Time) int64 {
	return t.UnixNano()
}

// FormatTimePtrForDB converts a *time.Time for storage, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB converts a stored unix nanosecond value back into a UTC time.Time
func ParseTimeFromDB(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// ParseNullTimeFromDB converts a nullable stored value, returning nil for NULL
func ParseNullTimeFromDB(ns sql.NullInt64) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := ParseTimeFromDB(ns.Int64)
	return &t
}
