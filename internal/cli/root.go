// Package cli defines carve's cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		debug   bool
		noColor bool
		cwd     string
	)

	rootCmd := &cobra.Command{
		Use:   "carve",
		Short: "Carve rewrites git history below the level of whole commits",
		Long: `Carve rewrites git history below the level of whole commits.

Split a commit at exact lines or columns of its diff, insert a commit into
the middle of a branch, remove any commit, or move a commit to another branch
without leaving your checkout.

Carve never resolves conflicts for you. When git stops on a conflict, carve
stops too and leaves the repository as git left it.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			tui.ConfigureColor(noColor)
			runtime.SetDebug(debug)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug output to the terminal.")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
	rootCmd.PersistentFlags().StringVar(&cwd, "cwd", "", "Run as if carve was started in this directory.")

	rootCmd.AddCommand(newSplitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newPositionCmd())

	return rootCmd
}
