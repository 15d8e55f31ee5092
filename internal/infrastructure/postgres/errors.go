package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/blogicum/internal/domain/repository"
)

const uniqueViolation = "23505"

// mapUniqueViolation converts unique-constraint errors on users into
// repository sentinels and returns any other error unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return repository.ErrDuplicateUsername
	case "users_email_key":
		return repository.ErrDuplicateEmail
	}
	return err
}
