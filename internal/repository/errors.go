package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrReferenced reports that a row cannot be deleted because other rows
// still reference it.
var ErrReferenced = errors.New("row is referenced by dependent records")

// isForeignKeyViolation reports whether err is a Postgres restrict
// violation (SQLSTATE 23503) raised by a dependent row.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
