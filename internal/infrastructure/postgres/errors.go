package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/mesto-api/internal/domain/repository"
)

// SQLSTATE codes mapped to store errors.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeStringTooLong       = "22001"
	codeInvalidTextRepr     = "22P02"
)

// classify converts pgx errors into repository.Err* values. Unknown errors
// are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		case codeCheckViolation, codeNotNullViolation, codeForeignKeyViolation,
			codeStringTooLong, codeInvalidTextRepr:
			return fmt.Errorf("%w: %s", repository.ErrInvalid, pgErr.Message)
		}
	}
	return err
}
