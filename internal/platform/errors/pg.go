package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes we care about
const (
	sqlstateUniqueViolation = "23505"
	sqlstateFKViolation     = "23503"
	sqlstateNotNull         = "23502"
	sqlstateCheckViolation  = "23514"
	sqlstateSerialization   = "40001"
	sqlstateDeadlock        = "40P01"
	sqlstateTooManyConns    = "53300"
	sqlstateCannotConnect   = "57P03"
)

// PgCode returns the SQLSTATE of the wrapped pg error, or ""
func PgCode(err error) string {
	var pge *pgconn.PgError
	if stderrs.As(err, &pge) {
		return pge.Code
	}
	return ""
}

// IsNoRows reports whether err is pgx.ErrNoRows (possibly wrapped)
func IsNoRows(err error) bool { return stderrs.Is(err, pgx.ErrNoRows) }

// IsUniqueViolation reports a unique constraint violation
func IsUniqueViolation(err error) bool { return PgCode(err) == sqlstateUniqueViolation }

// IsFKViolation reports a foreign key violation
func IsFKViolation(err error) bool { return PgCode(err) == sqlstateFKViolation }

// IsRetryable reports whether the database error is plausibly transient
func IsRetryable(err error) bool {
	switch PgCode(err) {
	case sqlstateSerialization, sqlstateDeadlock, sqlstateTooManyConns, sqlstateCannotConnect:
		return true
	}
	return false
}

// FromPg maps a database error into our structured form
// Callers usually wrap with context afterwards
func FromPg(err error) error {
	if err == nil {
		return nil
	}
	if IsNoRows(err) {
		return Wrap(err, ErrorCodeNotFound, "no rows")
	}
	switch PgCode(err) {
	case sqlstateUniqueViolation:
		return Wrap(err, ErrorCodeDuplicateKey, "duplicate key")
	case sqlstateFKViolation, sqlstateCheckViolation, sqlstateNotNull:
		return Wrap(err, ErrorCodeConflict, "constraint violation")
	case sqlstateSerialization, sqlstateDeadlock, sqlstateTooManyConns, sqlstateCannotConnect:
		return Wrap(err, ErrorCodeUnavailable, "database unavailable")
	case "":
		return Wrap(err, ErrorCodeDB, "database error")
	default:
		return Wrap(err, ErrorCodeDB, "database error")
	}
}
