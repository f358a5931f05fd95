package kernel_test

import (
	"testing"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("creates location with all fields", func(t *testing.T) {
		loc, err := kernel.NewLocation("Chicago", "IL", "60601")

		require.NoError(t, err)
		assert.Equal(t, "Chicago", loc.City())
		assert.Equal(t, "IL", loc.State())
		assert.Equal(t, "60601", loc.PostalCode())
		assert.Equal(t, "Chicago, IL 60601", loc.String())
	})

	t.Run("postal code is optional", func(t *testing.T) {
		loc, err := kernel.NewLocation("Dallas", "TX", "")

		require.NoError(t, err)
		assert.Empty(t, loc.PostalCode())
		assert.Equal(t, "Dallas, TX", loc.String())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		loc, err := kernel.NewLocation("  Atlanta ", " GA ", " 30303 ")

		require.NoError(t, err)
		assert.Equal(t, "Atlanta", loc.City())
		assert.Equal(t, "GA", loc.State())
		assert.Equal(t, "30303", loc.PostalCode())
	})

	t.Run("requires city", func(t *testing.T) {
		_, err := kernel.NewLocation("  ", "IL", "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires state", func(t *testing.T) {
		_, err := kernel.NewLocation("Chicago", "", "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("constructed location passes", func(t *testing.T) {
		loc, err := kernel.NewLocation("Denver", "CO", "")
		require.NoError(t, err)

		require.NoError(t, loc.Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var loc kernel.Location

		require.ErrorIs(t, loc.Validate(), errs.ErrValueIsRequired)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, err := kernel.NewLocation("Chicago", "IL", "60601")
	require.NoError(t, err)
	b, err := kernel.NewLocation("Chicago", "IL", "60601")
	require.NoError(t, err)
	c, err := kernel.NewLocation("Chicago", "IL", "60602")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
