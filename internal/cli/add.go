package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"carve.dev/carve/internal/cli/helpers"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
)

func newAddCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "add <after> <patch-file>",
		Short: "Insert a commit built from a patch file into the current branch",
		Long: `Insert a commit built from a patch file into the current branch.

The branch is reset to <after>, the first two commits that followed it are
replayed, the patch is applied and committed with the given message, and the
remaining commits are replayed on top.

When the patch does not apply cleanly, carve retries with a three-way merge.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteCommits,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if strings.TrimSpace(message) == "" && tui.InteractiveAllowed() {
					input, err := tui.PromptTextInput("Commit message:", "")
					if err != nil {
						return err
					}
					message = input
				}
				if strings.TrimSpace(message) == "" {
					return fmt.Errorf("a commit message is required; pass it with -m")
				}

				var hash string
				err := helpers.WithProgress(ctx, "Adding a commit after "+args[0], func(rw *rewrite.Rewriter) error {
					var err error
					hash, err = rw.AddCommit(ctx.Context, args[0], args[1], message)
					return err
				})
				if err != nil {
					return err
				}
				ctx.Splog.Info("Added %s after %s.", tui.ColorHash(hash), args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message of the new commit.")

	return cmd
}
