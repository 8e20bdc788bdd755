package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chisel.dev/chisel/internal/runtime"
)

// newSquashCmd creates the squash command
func newSquashCmd() *cobra.Command {
	var (
		message string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "squash <commit>...",
		Short: "Squash the selected commits and everything above them into one commit",
		Long: `Squash the selected commits and everything above them into one commit.

The affected range runs from the oldest selected commit through the current
tip; it is replaced by a single commit whose content equals the old tip.
Without --message the new commit reuses the old tip's subject and lists
every squashed commit in its body.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.NewContext(yes)
			if err != nil {
				return err
			}

			selected, err := expandSelection(rc, args)
			if err != nil {
				return err
			}

			res, err := rc.Engine.Squash(cmd.Context(), selected, message)
			if err != nil {
				return fmt.Errorf("squash failed: %w", err)
			}

			rc.Splog.Info("Squashed %d commits into %s", len(selected), shortHash(res.NewTip))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "The message for the squashed commit.")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts.")

	return cmd
}
