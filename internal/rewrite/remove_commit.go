package rewrite

import (
	"context"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/tui"
)

const recipeRemove = "remove"

// RemoveOptions configures RemoveCommit
type RemoveOptions struct {
	// Branch to remove the commit from; the current branch when empty
	Branch string
	// Push the rewritten branch to the configured remote
	Push bool
	// Force pushes with --force-with-lease
	Force bool
}

// RemoveCommit drops the commit at ref from a branch and returns the branch name.
//
// Removing the tip moves the branch to the tip's parent. Any other commit is
// cut out with a rebase of the commits after it onto its parent, which leaves
// the rewritten branch checked out.
func (r *Rewriter) RemoveCommit(ctx context.Context, ref string, opts RemoveOptions) (string, error) {
	var (
		branch  string
		current string
		hash    string
		parent  string
		tip     string
	)

	steps := []Step{
		{Name: "resolve branch", Run: func(ctx context.Context) error {
			var err error
			current, err = r.runner.CurrentBranch(ctx)
			if err != nil && opts.Branch == "" {
				return err
			}
			branch = opts.Branch
			if branch == "" {
				branch = current
			}

			exists, err := r.runner.BranchExists(ctx, branch)
			if err != nil {
				return err
			}
			if !exists {
				return carveerrors.NewStateConflictError(carveerrors.ErrBranchNotFound, "branch %s", branch)
			}
			tip, err = r.runner.ResolveRef(ctx, branch)
			return err
		}},
		{Name: "resolve commit", Run: func(ctx context.Context) error {
			var err error
			hash, err = r.runner.ResolveRef(ctx, ref)
			if err != nil {
				return err
			}

			ok, err := r.runner.IsAncestor(ctx, hash, tip)
			if err != nil {
				return err
			}
			if !ok {
				return carveerrors.NewStateConflictError(carveerrors.ErrNotAncestor,
					"%s is not on %s", tui.ColorHash(hash), branch)
			}

			parent, err = r.runner.ParentOf(ctx, hash)
			return err
		}},
		{Name: "rewrite branch", Run: func(ctx context.Context) error {
			if hash == tip {
				return r.dropTip(ctx, branch, current, parent)
			}
			if err := r.requireClean(ctx); err != nil {
				return err
			}
			return r.runner.RebaseOnto(ctx, parent, hash, branch)
		}},
	}
	if opts.Push {
		steps = append(steps, Step{Name: "push", Run: func(ctx context.Context) error {
			return r.runner.PushBranch(ctx, branch, r.remote(), opts.Force)
		}})
	}

	if err := r.run(ctx, Recipe{Name: recipeRemove, Steps: steps}); err != nil {
		return "", err
	}

	return branch, nil
}

// dropTip moves branch back to parent. A checked-out branch is hard-reset so
// the working tree follows; any other branch only has its ref moved.
func (r *Rewriter) dropTip(ctx context.Context, branch, current, parent string) error {
	if branch != current {
		return r.runner.UpdateBranchRef(ctx, branch, parent)
	}
	if err := r.requireClean(ctx); err != nil {
		return err
	}
	return r.runner.HardReset(ctx, parent)
}
