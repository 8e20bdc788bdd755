package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tempRepoRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	return root
}

func TestRepoConfig(t *testing.T) {
	t.Run("missing config yields defaults", func(t *testing.T) {
		root := tempRepoRoot(t)

		limit, err := GetGraphLimit(root)
		require.NoError(t, err)
		require.Equal(t, DefaultGraphLimit, limit)

		timeout, err := GetReplayTimeout(root)
		require.NoError(t, err)
		require.Zero(t, timeout)

		color, err := GetColor(root)
		require.NoError(t, err)
		require.True(t, color)
	})

	t.Run("round-trips settings", func(t *testing.T) {
		root := tempRepoRoot(t)

		require.NoError(t, SetGraphLimit(root, 200))
		require.NoError(t, SetReplayTimeout(root, 30))
		require.NoError(t, SetColor(root, false))

		limit, err := GetGraphLimit(root)
		require.NoError(t, err)
		require.Equal(t, 200, limit)

		timeout, err := GetReplayTimeout(root)
		require.NoError(t, err)
		require.Equal(t, 30*time.Second, timeout)

		color, err := GetColor(root)
		require.NoError(t, err)
		require.False(t, color)
	})

	t.Run("partial config keeps other defaults", func(t *testing.T) {
		root := tempRepoRoot(t)
		require.NoError(t, SetColor(root, false))

		limit, err := GetGraphLimit(root)
		require.NoError(t, err)
		require.Equal(t, DefaultGraphLimit, limit)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		root := tempRepoRoot(t)
		require.Error(t, SetGraphLimit(root, 0))
		require.Error(t, SetReplayTimeout(root, -1))
	})

	t.Run("malformed config is an error", func(t *testing.T) {
		root := tempRepoRoot(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".chisel_config"), []byte("{nope"), 0600))

		_, err := GetRepoConfig(root)
		require.Error(t, err)
	})
}
