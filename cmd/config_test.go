package cmd_test

import (
	"testing"
	"time"

	"loadboard/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolSetting(t *testing.T) {
	t.Run("empty value selects the fallback", func(t *testing.T) {
		enabled, err := cmd.BoolSetting("", true)

		require.NoError(t, err)
		assert.True(t, enabled)

		disabled, err := cmd.BoolSetting("", false)

		require.NoError(t, err)
		assert.False(t, disabled)
	})

	t.Run("explicit value overrides the fallback", func(t *testing.T) {
		enabled, err := cmd.BoolSetting("false", true)

		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := cmd.BoolSetting("maybe", true)

		require.Error(t, err)
	})
}

func TestIntSetting(t *testing.T) {
	t.Run("empty value selects the fallback", func(t *testing.T) {
		value, err := cmd.IntSetting("", 80000)

		require.NoError(t, err)
		assert.Equal(t, 80000, value)
	})

	t.Run("explicit value overrides the fallback", func(t *testing.T) {
		value, err := cmd.IntSetting("45000", 80000)

		require.NoError(t, err)
		assert.Equal(t, 45000, value)
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := cmd.IntSetting("heavy", 0)

		require.Error(t, err)
	})
}

func TestDurationSetting(t *testing.T) {
	t.Run("empty value selects the fallback", func(t *testing.T) {
		value, err := cmd.DurationSetting("", 24*time.Hour)

		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, value)
	})

	t.Run("explicit value overrides the fallback", func(t *testing.T) {
		value, err := cmd.DurationSetting("90m", 24*time.Hour)

		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, value)
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := cmd.DurationSetting("tomorrow", 0)

		require.Error(t, err)
	})
}
