package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"carve.dev/carve/internal/cli/helpers"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
)

func newRemoveCmd() *cobra.Command {
	var (
		branch string
		push   bool
		force  bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "remove <commit>",
		Short: "Remove a commit from a branch",
		Long: `Remove a commit from a branch.

The commit must be reachable from the branch, which defaults to the current
one. Commits after it are rebased onto its parent. When the commit is the tip
of a branch that is not checked out, only the branch ref moves.

Use --push to push the rewritten branch, and --force to push with a lease.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteCommits,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if !yes && tui.InteractiveAllowed() {
					target := "the current branch"
					if branch != "" {
						target = tui.ColorBranch(branch)
					}
					confirmed, err := tui.PromptConfirm(fmt.Sprintf("Remove %s from %s?", args[0], target), false)
					if err != nil {
						return err
					}
					if !confirmed {
						ctx.Splog.Info("Canceled.")
						return nil
					}
				}

				rewritten, err := ctx.Rewriter().RemoveCommit(ctx.Context, args[0], rewrite.RemoveOptions{
					Branch: branch,
					Push:   push,
					Force:  force,
				})
				if err != nil {
					return err
				}
				ctx.Splog.Info("Removed %s from %s.", args[0], tui.ColorBranch(rewritten))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to remove the commit from. Defaults to the current branch.")
	cmd.Flags().BoolVar(&push, "push", false, "Push the rewritten branch.")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Push with --force-with-lease.")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")
	_ = cmd.RegisterFlagCompletionFunc("branch", helpers.CompleteBranches)

	return cmd
}
