package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
)

// Classify tags driver errors with the sentinel the services branch on. Errors
// it does not recognise are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return inErrors.NotFound(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return errors.Join(inErrors.ErrConflict, err)
	case codeForeignKeyViolation:
		return inErrors.NotFound(err)
	case codeUniqueViolation:
		return errors.Join(inErrors.ErrAlreadyExist, err)
	}
	return err
}
