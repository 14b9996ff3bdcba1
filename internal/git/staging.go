package git

import (
	"context"
	"fmt"
	"strings"
)

// StageAll stages all changes including untracked files
func (r *realRunner) StageAll(ctx context.Context) error {
	_, err := r.cmd.Run(ctx, "add", "-A")
	if err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// HasStagedChanges checks if there are staged changes
func (r *realRunner) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := r.cmd.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUncommittedChanges checks for staged, unstaged or untracked changes
func (r *realRunner) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := r.cmd.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check working tree status: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}
