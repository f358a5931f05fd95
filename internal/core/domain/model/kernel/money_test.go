package kernel_test

import (
	"testing"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("2500.005"))

		require.NoError(t, err)
		assert.Equal(t, "2500.01", m.String())
	})

	t.Run("zero is allowed", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "0.00", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("-0.01"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("parses decimal strings", func(t *testing.T) {
		m, err := kernel.MoneyFromString("2500.00")

		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("2500")))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("twenty bucks")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	low, err := kernel.MoneyFromString("2000")
	require.NoError(t, err)
	high, err := kernel.MoneyFromString("3000")
	require.NoError(t, err)
	alsoLow, err := kernel.MoneyFromString("2000.00")
	require.NoError(t, err)

	assert.True(t, low.LessThan(high))
	assert.False(t, high.LessThan(low))
	assert.True(t, low.IsEqual(alsoLow))
}

func TestMoney_Validate(t *testing.T) {
	var zero kernel.Money
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)

	m, err := kernel.MoneyFromString("1.00")
	require.NoError(t, err)
	require.NoError(t, m.Validate())
}
