package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chisel.dev/chisel/internal/config"
	"chisel.dev/chisel/internal/graph"
	"chisel.dev/chisel/internal/output"
	"chisel.dev/chisel/internal/runtime"
	"chisel.dev/chisel/internal/tui"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var (
		maxCount    int
		interactive bool
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Show the commit graph with stable lanes and colors",
		Aliases: []string{"l"},
		Long: `Show the commit graph with stable lanes and colors.

Each line of history keeps its lane as long as it is active, and lanes are
recolored at branch boundaries so every branch reads as its own line. With
--interactive the graph opens in a viewer where commits can be selected and
squashed, dropped, or moved directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.NewContext(false)
			if err != nil {
				return err
			}

			limit := maxCount
			if limit <= 0 {
				limit, err = config.GetGraphLimit(rc.RepoRoot)
				if err != nil {
					return err
				}
			}

			nodes, err := loadGraph(cmd.Context(), rc, limit)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				rc.Splog.Info("No commits yet.")
				return nil
			}

			palette := rc.Palette
			if noColor {
				palette = output.NewPalette(false)
			}

			if !interactive {
				rc.Splog.Page(output.RenderGraph(nodes, palette))
				return nil
			}

			result, err := tui.RunGraphView(nodes, palette)
			if err != nil {
				return err
			}
			return dispatchGraphAction(cmd, rc, nodes, result)
		},
	}

	cmd.Flags().IntVarP(&maxCount, "max-count", "n", 0, "Limit the number of commits shown.")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the graph in an interactive viewer.")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output.")

	return cmd
}

// dispatchGraphAction runs the rewrite the user requested from the
// interactive graph.
func dispatchGraphAction(cmd *cobra.Command, rc *runtime.Context, nodes []*graph.Node, result *tui.GraphResult) error {
	ctx := cmd.Context()

	switch result.Action {
	case tui.ActionNone:
		return nil

	case tui.ActionSquash:
		message, err := rc.Prompter.PromptMessage("Subject for the squashed commit", tipSubject(nodes))
		if err != nil {
			return err
		}
		res, err := rc.Engine.Squash(ctx, result.Selected, message)
		if err != nil {
			return err
		}
		rc.Splog.Info("Squashed %d commits into %s", len(result.Selected), shortHash(res.NewTip))
		return nil

	case tui.ActionDrop:
		res, err := rc.Engine.Drop(ctx, result.Selected)
		if err != nil {
			return err
		}
		rc.Splog.Info("Dropped %d commits, tip is now %s", len(result.Selected), shortHash(res.NewTip))
		return nil

	case tui.ActionMove:
		// The picked anchor reads "place above this row"; the engine wants
		// the oldest-first insert-before position.
		res, err := rc.Engine.Move(ctx, result.Selected, tui.InsertionAnchor(nodes, result.Anchor))
		if err != nil {
			return err
		}
		printMoveResult(rc, res.Rewritten, res.NewTip)
		return nil

	default:
		return fmt.Errorf("unknown graph action %d", result.Action)
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
