package rewrite

import (
	"context"

	carveerrors "carve.dev/carve/internal/errors"
)

// Step is one named unit of a recipe
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Recipe is an ordered list of steps run under one name
type Recipe struct {
	Name  string
	Steps []Step
}

// run executes the steps of recipe in order and stops at the first failure
func (r *Rewriter) run(ctx context.Context, recipe Recipe) error {
	for _, step := range recipe.Steps {
		r.reporter.StepStarted(recipe.Name, step.Name)
		if err := step.Run(ctx); err != nil {
			r.reporter.StepFailed(recipe.Name, step.Name, err)
			return carveerrors.NewStepError(recipe.Name, step.Name, err)
		}
		r.reporter.StepCompleted(recipe.Name, step.Name)
	}
	return nil
}

// requireClean fails when the working tree has uncommitted changes
func (r *Rewriter) requireClean(ctx context.Context) error {
	dirty, err := r.runner.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return carveerrors.NewStateConflictError(carveerrors.ErrDirtyWorktree, "commit or stash your changes first")
	}
	return nil
}

// replay cherry-picks commits onto HEAD in order
func (r *Rewriter) replay(ctx context.Context, commits []string) error {
	for _, hash := range commits {
		if err := r.runner.CherryPick(ctx, hash); err != nil {
			return err
		}
	}
	return nil
}
