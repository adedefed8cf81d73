package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	PgUniqueViolation         = "23505"
	sqliteUniqueConstraintMsg = "UNIQUE constraint failed"
)

// IsUniqueViolation reports whether err comes from a UNIQUE constraint on
// either supported engine.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == PgUniqueViolation
	}

	return strings.Contains(err.Error(), sqliteUniqueConstraintMsg)
}
