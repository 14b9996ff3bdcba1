package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	carveerrors "carve.dev/carve/internal/errors"
)

// PushBranch pushes a branch to remote and sets its upstream.
// If forceWithLease is true, uses --force-with-lease so a rewritten branch
// only replaces the remote tip it was last fetched at.
func (r *realRunner) PushBranch(ctx context.Context, branchName, remote string, forceWithLease bool) error {
	args := []string{"push", "-u", remote}
	if forceWithLease {
		args = append(args, "--force-with-lease")
	}
	args = append(args, branchName)

	_, err := r.cmd.Run(ctx, args...)
	if err == nil {
		return nil
	}

	var gitErr *carveerrors.GitCommandError
	if errors.As(err, &gitErr) && (strings.Contains(gitErr.Stderr, "stale info") || strings.Contains(gitErr.Stderr, "forced update")) {
		return fmt.Errorf("force-with-lease push of %s failed due to external changes to the remote branch; fetch and inspect %s/%s before retrying: %w",
			branchName, remote, branchName, ErrStaleRemoteInfo)
	}
	return fmt.Errorf("failed to push branch %s: %w", branchName, err)
}
