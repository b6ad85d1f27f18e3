package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsUniqueViolation reports whether err is a unique or primary key
// violation from either store (PostgreSQL 23505, SQLite CONSTRAINT_UNIQUE
// or CONSTRAINT_PRIMARYKEY).
func IsUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// Diagnostic renders a store error for the client-facing details field.
// Postgres errors are reduced to SQLSTATE and message.
func Diagnostic(err error) string {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return fmt.Sprintf("%s (SQLSTATE %s)", pge.Message, pge.Code)
	}
	return err.Error()
}
