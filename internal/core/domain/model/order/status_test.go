package order_test

import (
	"fmt"
	"testing"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Approved))
	assert.Equal(t, 3, int(order.Rejected))
	assert.Equal(t, 4, int(order.Delivered))
}

func TestParseStatus(t *testing.T) {
	t.Run("should round trip every valid status", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Approved, order.Rejected, order.Delivered} {
			t.Run(status.String(), func(t *testing.T) {
				parsed, err := order.ParseStatus(status.String())

				require.NoError(t, err)
				assert.Equal(t, status, parsed)
			})
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, in := range []string{"", "unknown", "Approved", "cancelled"} {
			_, err := order.ParseStatus(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input %q", in)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatus_Review(t *testing.T) {
	t.Run("should allow pending to approved or rejected", func(t *testing.T) {
		for _, decision := range []order.Status{order.Approved, order.Rejected} {
			next, err := order.Pending.Review(decision)

			require.NoError(t, err)
			assert.Equal(t, decision, next)
		}
	})

	t.Run("should reject non decision targets", func(t *testing.T) {
		for _, decision := range []order.Status{order.Pending, order.Delivered, order.Unknown} {
			_, err := order.Pending.Review(decision)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "decision %s", decision)
		}
	})

	t.Run("should refuse review outside pending", func(t *testing.T) {
		for _, current := range []order.Status{order.Approved, order.Rejected, order.Delivered} {
			t.Run(fmt.Sprintf("from %s", current), func(t *testing.T) {
				_, err := current.Review(order.Approved)

				var transitionErr *errs.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, current.String(), transitionErr.From)
				assert.Equal(t, "approved", transitionErr.To)
			})
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("should require approval in strict mode", func(t *testing.T) {
		next, err := order.Approved.Deliver(true)
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)

		for _, current := range []order.Status{order.Pending, order.Rejected, order.Delivered} {
			_, err = current.Deliver(true)
			require.ErrorIs(t, err, errs.ErrInvalidTransition, "from %s", current)
		}
	})

	t.Run("should accept any valid status in lenient mode", func(t *testing.T) {
		for _, current := range []order.Status{order.Pending, order.Approved, order.Rejected, order.Delivered} {
			next, err := current.Deliver(false)
			require.NoError(t, err)
			assert.Equal(t, order.Delivered, next)
		}
	})

	t.Run("should fail for unknown status", func(t *testing.T) {
		_, err := order.Unknown.Deliver(false)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
