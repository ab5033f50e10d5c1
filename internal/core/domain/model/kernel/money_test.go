package kernel_test

import (
	"testing"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should round to two decimals", func(t *testing.T) {
		m, err := kernel.NewMoney("price", decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
		require.NoError(t, m.Validate())
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney("price", decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsEqual(kernel.ZeroMoney()))
	})

	t.Run("should accept the largest storable amount", func(t *testing.T) {
		m, err := kernel.NewMoney("totalAmount", kernel.MaxMoney)

		require.NoError(t, err)
		assert.Equal(t, "999999999999.99", m.String())
	})

	t.Run("should reject amounts the store cannot hold", func(t *testing.T) {
		for _, literal := range []string{"1000000000000", "999999999999.995", "1e15"} {
			_, err := kernel.ParseMoney("items[0].price", literal)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, literal)
			assert.Equal(t, []string{"items[0].price"}, errs.Fields(err), literal)
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney("totalAmount", decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, []string{"totalAmount"}, errs.Fields(err))
	})
}

func TestParseMoney(t *testing.T) {
	t.Run("should parse decimal literal", func(t *testing.T) {
		m, err := kernel.ParseMoney("price", "12.5")

		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.ParseMoney("price", "twelve")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price, err := kernel.ParseMoney("price", "2.25")
	require.NoError(t, err)

	total := kernel.ZeroMoney().Add(price.Mul(4)).Add(price)

	assert.Equal(t, "11.25", total.String())
	require.NoError(t, total.Validate())
}

func TestMoney_ZeroValue(t *testing.T) {
	var m kernel.Money

	require.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
}
