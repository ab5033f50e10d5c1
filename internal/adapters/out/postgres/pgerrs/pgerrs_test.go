package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"purchasing/internal/adapters/out/postgres/pgerrs"
	"purchasing/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWrap(t *testing.T) {
	t.Run("should keep nil", func(t *testing.T) {
		require.NoError(t, pgerrs.Wrap("insert", nil))
	})

	t.Run("should flag unique violations as conflicts", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgerrs.UniqueViolation, ConstraintName: "idx_purchase_orders_order_number"}

		err := pgerrs.Wrap("insert purchase order", fmt.Errorf("create: %w", pgErr))

		require.ErrorIs(t, err, errs.ErrStorageConflict)
		require.ErrorIs(t, err, errs.ErrStorage)
	})

	t.Run("should flag translated duplicate keys", func(t *testing.T) {
		err := pgerrs.Wrap("insert", gorm.ErrDuplicatedKey)

		require.ErrorIs(t, err, errs.ErrStorageConflict)
	})

	t.Run("should wrap other failures", func(t *testing.T) {
		cause := errors.New("connection refused")

		err := pgerrs.Wrap("select", cause)

		require.ErrorIs(t, err, errs.ErrStorage)
		require.ErrorIs(t, err, cause)
		assert.False(t, errors.Is(err, errs.ErrStorageConflict))
	})
}
