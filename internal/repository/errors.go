package repository

import (
	"errors"

	"flightdesk/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// wrap translates driver errors into the domain error kinds: missing rows
// become ErrNotFound, unique-index violations become ErrDuplicateCode and
// everything else is surfaced as a StorageError rather than swallowed.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateCode
	}
	return domain.NewStorageError(op, err)
}
