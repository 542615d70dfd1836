package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Run("flag form", func(t *testing.T) {
		mode, rest, err := ParseMode([]string{"--mode=api-service", "--max-concurrent=50"})
		require.NoError(t, err)
		assert.Equal(t, ModeAPI, mode)
		assert.Equal(t, []string{"--max-concurrent=50"}, rest)
	})

	t.Run("subcommand shorthand", func(t *testing.T) {
		mode, rest, err := ParseMode([]string{"notify", "--prefetch=4"})
		require.NoError(t, err)
		assert.Equal(t, ModeNotify, mode)
		assert.Equal(t, []string{"--prefetch=4"}, rest)
	})

	t.Run("alias resolves", func(t *testing.T) {
		mode, _, err := ParseMode([]string{"--mode=api"})
		require.NoError(t, err)
		assert.Equal(t, ModeAPI, mode)
	})

	t.Run("missing mode", func(t *testing.T) {
		_, _, err := ParseMode([]string{"--max-concurrent=50"})
		assert.Error(t, err)
	})
}
