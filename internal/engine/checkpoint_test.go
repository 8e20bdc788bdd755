package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckpoint(t *testing.T) {
	t.Run("records the tip under a reserved ref", func(t *testing.T) {
		b := linearRepo()
		cp, err := CreateCheckpoint(context.Background(), b, "main", "c4")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(cp.Ref, checkpointRefPrefix))
		require.Equal(t, "c4", b.refs[cp.Ref])

		cp.Drop(context.Background())
		require.Empty(t, b.refs)
	})

	t.Run("restore reattaches the branch at the recorded tip", func(t *testing.T) {
		b := linearRepo()
		cp, err := CreateCheckpoint(context.Background(), b, "main", "c4")
		require.NoError(t, err)

		// Simulate a half-finished replay.
		require.NoError(t, b.CheckoutDetached(context.Background(), "c1"))
		require.NoError(t, b.CherryPick(context.Background(), "c2"))
		b.branches["main"] = b.head

		require.NoError(t, cp.Restore(context.Background()))
		require.Equal(t, "main", b.branch)
		require.Equal(t, "c4", b.head)
		require.Equal(t, "c4", b.branches["main"])
	})

	t.Run("restore of a detached checkpoint stays detached", func(t *testing.T) {
		b := linearRepo()
		b.branch = ""
		cp, err := CreateCheckpoint(context.Background(), b, "", "c4")
		require.NoError(t, err)

		require.NoError(t, b.CheckoutDetached(context.Background(), "c1"))
		require.NoError(t, cp.Restore(context.Background()))
		require.Empty(t, b.branch)
		require.Equal(t, "c4", b.head)
	})
}
