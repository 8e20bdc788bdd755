package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chisel.dev/chisel/internal/runtime"
)

// newDropCmd creates the drop command
func newDropCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop <commit>...",
		Short: "Remove the selected commits from history",
		Long: `Remove the selected commits from history.

Every other commit above the removed ones is replayed in its original
relative order. If any replay conflicts, the whole operation rolls back and
the branch is left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.NewContext(yes)
			if err != nil {
				return err
			}

			selected, err := expandSelection(rc, args)
			if err != nil {
				return err
			}

			res, err := rc.Engine.Drop(cmd.Context(), selected)
			if err != nil {
				return fmt.Errorf("drop failed: %w", err)
			}

			rc.Splog.Info("Dropped %d commits, tip is now %s", len(selected), shortHash(res.NewTip))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts.")

	return cmd
}
