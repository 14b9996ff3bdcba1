package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/git"
)

const recipeAdd = "add"

// AddCommit inserts a commit made from patchFile into the history of the
// current branch and returns its hash.
//
// The commits after "after" are taken oldest first. The first two are
// replayed before the new commit and the rest after it; with only one commit
// after "after", the new commit lands right after that one.
func (r *Rewriter) AddCommit(ctx context.Context, after, patchFile, message string) (string, error) {
	var (
		branch  string
		base    string
		before  []string
		rest    []string
		created string
	)

	absPatch, err := filepath.Abs(patchFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve patch path: %w", err)
	}

	steps := []Step{
		{Name: "resolve commits", Run: func(ctx context.Context) error {
			if _, err := os.Stat(absPatch); err != nil {
				return fmt.Errorf("failed to read patch file: %w", err)
			}
			if message == "" {
				return fmt.Errorf("a commit message is required")
			}

			var err error
			branch, err = r.runner.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			base, err = r.runner.ResolveRef(ctx, after)
			if err != nil {
				return err
			}

			commits, err := r.runner.ListCommits(ctx, base, branch)
			if err != nil {
				return err
			}
			if len(commits) == 0 {
				return carveerrors.NewStateConflictError(carveerrors.ErrNoCommitsAfter,
					"%s is the tip of %s", after, branch)
			}

			split := 2
			if len(commits) < split {
				split = len(commits)
			}
			before, rest = commits[:split], commits[split:]
			return nil
		}},
		{Name: "check working tree", Run: r.requireClean},
		{Name: "reset to base", Run: func(ctx context.Context) error {
			return r.runner.HardReset(ctx, base)
		}},
		{Name: "replay preceding commits", Run: func(ctx context.Context) error {
			return r.replay(ctx, before)
		}},
		{Name: "apply patch", Run: func(ctx context.Context) error {
			return r.applyWithFallback(ctx, absPatch)
		}},
		{Name: "commit", Run: func(ctx context.Context) error {
			if err := r.runner.StageAll(ctx); err != nil {
				return err
			}
			hash, err := r.runner.Commit(ctx, message)
			if err != nil {
				return err
			}
			created = hash
			return nil
		}},
		{Name: "replay remaining commits", Run: func(ctx context.Context) error {
			return r.replay(ctx, rest)
		}},
	}

	if err := r.run(ctx, Recipe{Name: recipeAdd, Steps: steps}); err != nil {
		return "", err
	}

	return created, nil
}

// applyWithFallback applies a patch as is and retries with a three-way merge
func (r *Rewriter) applyWithFallback(ctx context.Context, patchFile string) error {
	err := r.runner.ApplyPatch(ctx, patchFile, git.ApplyOptions{})
	if err == nil {
		return nil
	}
	r.splog.Debug("Plain apply failed, retrying with a three-way merge: %v", err)
	return r.runner.ApplyPatch(ctx, patchFile, git.ApplyOptions{ThreeWay: true})
}
