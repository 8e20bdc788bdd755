package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chisel.dev/chisel/internal/git"
	"chisel.dev/chisel/testhelpers"
)

func TestResolveRevisionIntegration(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.LinearSceneSetup)

	tip, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)

	t.Run("branch name", func(t *testing.T) {
		sha, err := git.ResolveRevision(scene.Dir, "main")
		require.NoError(t, err)
		require.Equal(t, tip, sha)
	})

	t.Run("HEAD", func(t *testing.T) {
		sha, err := git.ResolveRevision(scene.Dir, "HEAD")
		require.NoError(t, err)
		require.Equal(t, tip, sha)
	})

	t.Run("short hash prefix", func(t *testing.T) {
		sha, err := git.ResolveRevision(scene.Dir, tip[:7])
		require.NoError(t, err)
		require.Equal(t, tip, sha)
	})

	t.Run("parent expression", func(t *testing.T) {
		parent, err := scene.Repo.GetRevision("HEAD~1")
		require.NoError(t, err)

		sha, err := git.ResolveRevision(scene.Dir, "HEAD~1")
		require.NoError(t, err)
		require.Equal(t, parent, sha)
	})

	t.Run("unknown revision fails", func(t *testing.T) {
		_, err := git.ResolveRevision(scene.Dir, "no-such-rev")
		require.Error(t, err)
	})
}
