package cli

import (
	"github.com/spf13/cobra"

	"carve.dev/carve/internal/cli/helpers"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
)

func newMoveCmd() *cobra.Command {
	var opts rewrite.MoveOptions

	cmd := &cobra.Command{
		Use:   "move <commit> <branch>",
		Short: "Copy a commit onto another branch without checking it out",
		Long: `Copy a commit onto another branch without checking it out.

The commit is cherry-picked onto the destination in a temporary worktree, so
your checkout is left alone. A destination that only exists on the remote is
created from it.

Use --remove to also drop the commit from the current branch, and --autostash
to stash uncommitted changes for the duration of the move.`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return helpers.CompleteCommits(cmd, args, toComplete)
			}
			return helpers.CompleteBranches(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				dest, err := ctx.Rewriter().MoveCommit(ctx.Context, args[0], args[1], opts)
				if err != nil {
					return err
				}
				verb := "Copied"
				if opts.RemoveFromSource {
					verb = "Moved"
				}
				ctx.Splog.Info("%s %s to %s.", verb, args[0], tui.ColorBranch(dest))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.RemoveFromSource, "remove", false, "Remove the commit from the current branch after copying it.")
	cmd.Flags().BoolVar(&opts.AutoStash, "autostash", false, "Stash uncommitted changes and restore them afterwards.")
	cmd.Flags().BoolVar(&opts.Push, "push", false, "Push the destination branch.")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Push with --force-with-lease.")

	return cmd
}
