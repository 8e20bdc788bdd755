package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReplayTimeout(t *testing.T) {
	t.Run("defaults to the built-in timeout", func(t *testing.T) {
		r := NewCommandRunner(t.TempDir())
		require.Equal(t, ReplayCommandTimeout, r.ReplayTimeout())
	})

	t.Run("can be overridden", func(t *testing.T) {
		r := NewCommandRunner(t.TempDir())
		r.SetReplayTimeout(30 * time.Second)
		require.Equal(t, 30*time.Second, r.ReplayTimeout())
	})

	t.Run("ignores non-positive values", func(t *testing.T) {
		r := NewCommandRunner(t.TempDir())
		r.SetReplayTimeout(0)
		r.SetReplayTimeout(-time.Second)
		require.Equal(t, ReplayCommandTimeout, r.ReplayTimeout())
	})
}
