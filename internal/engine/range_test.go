package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	chiselerrors "chisel.dev/chisel/internal/errors"
	"chisel.dev/chisel/internal/git"
)

func chain(subjects ...string) []*git.Commit {
	commits := make([]*git.Commit, len(subjects))
	parent := ""
	for i, subject := range subjects {
		c := &git.Commit{Hash: subject, Subject: subject}
		if parent != "" {
			c.Parents = []string{parent}
		}
		commits[i] = c
		parent = c.Hash
	}
	return commits
}

func TestResolveRange(t *testing.T) {
	history := chain("c1", "c2", "c3", "c4")

	t.Run("range runs from earliest selected to tip", func(t *testing.T) {
		rng, err := ResolveRange([]string{"c3", "c2"}, history, "")
		require.NoError(t, err)
		require.Equal(t, "c1", rng.Base)
		require.Equal(t, []string{"c2", "c3", "c4"}, rng.Hashes())
		require.Equal(t, "c4", rng.Tip())
	})

	t.Run("single selection at the tip", func(t *testing.T) {
		rng, err := ResolveRange([]string{"c4"}, history, "")
		require.NoError(t, err)
		require.Equal(t, "c3", rng.Base)
		require.Equal(t, []string{"c4"}, rng.Hashes())
	})

	t.Run("anchor widens the range", func(t *testing.T) {
		rng, err := ResolveRange([]string{"c4"}, history, "c2")
		require.NoError(t, err)
		require.Equal(t, "c1", rng.Base)
		require.Equal(t, []string{"c2", "c3", "c4"}, rng.Hashes())
	})

	t.Run("anchor newer than the selection does not shrink it", func(t *testing.T) {
		rng, err := ResolveRange([]string{"c2"}, history, "c4")
		require.NoError(t, err)
		require.Equal(t, []string{"c2", "c3", "c4"}, rng.Hashes())
	})

	t.Run("unknown anchor is rejected", func(t *testing.T) {
		_, err := ResolveRange([]string{"c3"}, history, "missing")
		var verr *chiselerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, chiselerrors.InvalidDropTarget, verr.Reason)
	})

	t.Run("stale hashes are ignored", func(t *testing.T) {
		rng, err := ResolveRange([]string{"gone", "c3"}, history, "")
		require.NoError(t, err)
		require.Equal(t, []string{"c3", "c4"}, rng.Hashes())
	})

	t.Run("uncommitted sentinel never selects", func(t *testing.T) {
		_, err := ResolveRange([]string{git.UncommittedHash}, history, "")
		var verr *chiselerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, chiselerrors.EmptySelection, verr.Reason)
	})

	t.Run("root commit is out of bounds", func(t *testing.T) {
		_, err := ResolveRange([]string{"c1"}, history, "")
		var verr *chiselerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, chiselerrors.RootIncluded, verr.Reason)
	})

	t.Run("merge inside the range is rejected", func(t *testing.T) {
		withMerge := chain("c1", "c2", "m3", "c4")
		withMerge[2].Parents = []string{"c2", "x9"}

		_, err := ResolveRange([]string{"c2"}, withMerge, "")
		var verr *chiselerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, chiselerrors.MergeInRange, verr.Reason)

		// A range below the merge stays valid.
		rng, err := ResolveRange([]string{"c4"}, withMerge, "")
		require.NoError(t, err)
		require.Equal(t, []string{"c4"}, rng.Hashes())
	})

	t.Run("Contains covers only the range", func(t *testing.T) {
		rng, err := ResolveRange([]string{"c3"}, history, "")
		require.NoError(t, err)
		require.True(t, rng.Contains("c3"))
		require.True(t, rng.Contains("c4"))
		require.False(t, rng.Contains("c1"))
	})
}
