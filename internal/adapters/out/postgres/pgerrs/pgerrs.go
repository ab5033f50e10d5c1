// Package pgerrs classifies PostgreSQL driver errors into the storage errors of errs.
package pgerrs

import (
	"errors"

	"purchasing/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UniqueViolation is the SQLSTATE of a unique constraint violation.
const UniqueViolation = "23505"

// Wrap turns a driver error into a StorageError. Unique violations become
// conflicts. nil stays nil.
func Wrap(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewStorageConflictError(operation, err)
	}
	return errs.NewStorageError(operation, err)
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}
