package git

import (
	"context"
	"fmt"
)

// AddWorktree adds a linked worktree at path with an existing local branch checked out
func (r *realRunner) AddWorktree(ctx context.Context, path, branchName string) error {
	_, err := r.cmd.Run(ctx, "worktree", "add", path, branchName)
	if err != nil {
		return fmt.Errorf("failed to add worktree at %s: %w", path, err)
	}
	return nil
}

// AddWorktreeNewBranch adds a linked worktree at path on a new branch created at startPoint
func (r *realRunner) AddWorktreeNewBranch(ctx context.Context, path, branchName, startPoint string) error {
	_, err := r.cmd.Run(ctx, "worktree", "add", "-b", branchName, path, startPoint)
	if err != nil {
		return fmt.Errorf("failed to add worktree at %s for new branch %s: %w", path, branchName, err)
	}
	return nil
}

// AddWorktreeDetached adds a linked worktree at path with a detached HEAD at revision
func (r *realRunner) AddWorktreeDetached(ctx context.Context, path, revision string) error {
	_, err := r.cmd.Run(ctx, "worktree", "add", "--detach", path, revision)
	if err != nil {
		return fmt.Errorf("failed to add detached worktree at %s: %w", path, err)
	}
	return nil
}

// RemoveWorktree removes the worktree at the specified path
func (r *realRunner) RemoveWorktree(ctx context.Context, path string) error {
	_, err := r.cmd.Run(ctx, "worktree", "remove", "--force", path)
	if err != nil {
		return fmt.Errorf("failed to remove worktree at %s: %w", path, err)
	}
	return nil
}
