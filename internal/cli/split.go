package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"carve.dev/carve/internal/cli/helpers"
	"carve.dev/carve/internal/patch"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
)

const recentCommitLimit = 15

func newSplitCmd() *cobra.Command {
	var (
		at     []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "split [commit]",
		Short: "Split a commit into several commits at points in its diff",
		Long: `Split a commit into several commits at points in its diff.

Each --at names a position in the new version of a file changed by the commit,
as path:line, path:line:column or path:line:column:length. Lines and columns
start at 1. A point with a column cuts the changed line in two; a point
without one cuts before the line.

The commit is replaced by one commit per piece, each titled with the original
subject and its piece number, and the commits after it on the current branch
are replayed on top. Use --dry-run to print the pieces without changing the
repository.

Without a commit, carve asks you to pick one of the recent commits.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteCommits,
		RunE: func(cmd *cobra.Command, args []string) error {
			points := make([]rewrite.SplitPoint, 0, len(at))
			for _, raw := range at {
				point, err := rewrite.ParseSplitPoint(raw)
				if err != nil {
					return err
				}
				points = append(points, point)
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				ref := ""
				if len(args) > 0 {
					ref = args[0]
				}
				if ref == "" {
					selected, err := selectCommit(ctx)
					if err != nil {
						return err
					}
					ref = selected
				}

				if dryRun {
					return previewSplit(ctx, ref, points)
				}

				var commits []string
				err := helpers.WithProgress(ctx, "Splitting "+ref, func(rw *rewrite.Rewriter) error {
					var err error
					commits, err = rw.SplitCommit(ctx.Context, ref, points)
					return err
				})
				if err != nil {
					return err
				}
				for _, hash := range commits {
					subject, err := ctx.Runner.CommitSubject(ctx.Context, hash)
					if err != nil {
						return err
					}
					ctx.Splog.Info("  %s %s", tui.ColorHash(hash), subject)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&at, "at", nil, "Split point as path:line[:column[:length]]. Repeat for more pieces.")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the pieces without changing the repository.")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func selectCommit(ctx *runtime.Context) (string, error) {
	if !tui.InteractiveAllowed() {
		return "", fmt.Errorf("no commit given; pass one as an argument")
	}

	commits, err := ctx.Runner.RecentCommits(ctx.Context, recentCommitLimit)
	if err != nil {
		return "", err
	}
	options := make([]tui.CommitOption, len(commits))
	for i, c := range commits {
		options[i] = tui.CommitOption{Hash: c.Hash, Subject: c.Subject}
	}
	return tui.SelectCommit("Commit to split:", options)
}

func previewSplit(ctx *runtime.Context, ref string, points []rewrite.SplitPoint) error {
	pieces, err := ctx.Rewriter().PreviewSplit(ctx.Context, ref, points)
	if err != nil {
		return err
	}

	for i, piece := range pieces {
		if piece == "" {
			ctx.Splog.Info("Piece %d/%d: no changes, would be skipped.", i+1, len(pieces))
			continue
		}

		summaries, err := patch.Summarize(piece)
		if err != nil {
			return err
		}
		ctx.Splog.Info("Piece %d/%d:", i+1, len(pieces))
		for _, s := range summaries {
			marker := ""
			if s.IsNew {
				marker = " (new)"
			}
			ctx.Splog.Info("  %s%s %s %s", s.Path, marker,
				tui.ColorGreen(fmt.Sprintf("+%d", s.Added)), tui.ColorRed(fmt.Sprintf("-%d", s.Deleted)))
		}
		ctx.Splog.Page(tui.RenderDiff(piece))
		ctx.Splog.Newline()
	}
	return nil
}
