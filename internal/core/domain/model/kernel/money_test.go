package kernel_test

import (
	"testing"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		for _, v := range []string{"0", "1", "49.5", "1000000.01"} {
			m, err := kernel.MoneyFromString(v)

			require.NoError(t, err, v)
			assert.True(t, m.Decimal().Equal(decimal.RequireFromString(v)))
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.MoneyFromFloat(-0.01)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject non numeric strings", func(t *testing.T) {
		_, err := kernel.MoneyFromString("fifty")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "fifty")
	})
}

func TestMoney_ZeroValue(t *testing.T) {
	var m kernel.Money

	assert.True(t, m.IsZero())
	assert.True(t, m.IsEqual(kernel.ZeroMoney()))
	assert.Equal(t, "0", m.String())
}

func TestMoney_Add(t *testing.T) {
	total := kernel.ZeroMoney().
		Add(kernel.MustMoney("50")).
		Add(kernel.MustMoney("20"))

	assert.True(t, total.IsEqual(kernel.MustMoney("70.00")))
	assert.Equal(t, "70", total.String())
}

func TestMoney_AddKeepsDecimalPrecision(t *testing.T) {
	total := kernel.MustMoney("0.1").Add(kernel.MustMoney("0.2"))

	assert.True(t, total.IsEqual(kernel.MustMoney("0.3")))
	assert.Equal(t, "0.30", total.String())
}

func TestMoney_Times(t *testing.T) {
	price := kernel.MustMoney("12.25")

	assert.Equal(t, "49", price.Times(4).String())
	assert.True(t, price.Times(0).IsZero())
	assert.True(t, price.Times(-3).IsZero())
}

func TestMoney_Float64(t *testing.T) {
	assert.InDelta(t, 49.5, kernel.MustMoney("49.50").Float64(), 0.0001)
}

func TestMustMoney_Panics(t *testing.T) {
	assert.Panics(t, func() {
		kernel.MustMoney("-1")
	})
}
