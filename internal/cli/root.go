// Package cli wires the chisel commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chisel",
		Short: "Chisel is a command line tool for viewing and reshaping git history",
		Long: `Chisel is a command line tool for viewing and reshaping git history.

It renders the commit graph with stable lanes and colors, and rewrites
history transactionally: squash, drop, and move either complete fully or
leave the repository exactly as it was.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	// Add subcommands
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newSquashCmd())
	rootCmd.AddCommand(newDropCmd())
	rootCmd.AddCommand(newMoveCmd())

	return rootCmd
}
