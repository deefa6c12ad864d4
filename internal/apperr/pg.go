package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromStore translates a pgx error into an *Error. notFound is the message
// used for missing rows and dangling foreign keys; conflict for unique
// violations.
func FromStore(op string, err error, notFound, conflict string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Kind: KindConflict, Code: "conflict", Message: conflict, Err: err}
		case pgForeignKeyViolation:
			return &Error{Kind: KindNotFound, Code: "not_found", Message: notFound, Err: err}
		}
	}
	return Store(op, err)
}
