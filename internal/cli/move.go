package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"chisel.dev/chisel/internal/runtime"
)

// newMoveCmd creates the move command
func newMoveCmd() *cobra.Command {
	var (
		before string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "move <commit>...",
		Short: "Move the selected commits to another position in history",
		Long: `Move the selected commits to another position in history.

With --before the selection is reinserted immediately before the given
commit (in oldest-to-newest order); without it the selection moves to the
newest end. The selected commits keep their relative order. A move that
changes nothing succeeds without touching the repository.`,
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

			anchor := ""
			if before != "" {
				anchors, err := expandSelection(rc, []string{before})
				if err != nil {
					return err
				}
				anchor = anchors[0]
			}

			res, err := rc.Engine.Move(cmd.Context(), selected, anchor)
			if err != nil {
				return fmt.Errorf("move failed: %w", err)
			}

			if len(res.Rewritten) == 0 {
				rc.Splog.Info("Nothing to move, history is unchanged.")
				return nil
			}
			printMoveResult(rc, res.Rewritten, res.NewTip)
			return nil
		},
	}

	cmd.Flags().StringVarP(&before, "before", "b", "", "Commit to insert the selection before.")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts.")

	return cmd
}

// printMoveResult prints the old-to-new hash mapping of a completed move.
func printMoveResult(rc *runtime.Context, rewritten map[string]string, newTip string) {
	rc.Splog.Info("Moved commits, tip is now %s", shortHash(newTip))

	olds := make([]string, 0, len(rewritten))
	for old := range rewritten {
		olds = append(olds, old)
	}
	sort.Strings(olds)
	for _, old := range olds {
		rc.Splog.Info("  %s -> %s", shortHash(old), shortHash(rewritten[old]))
	}
}
