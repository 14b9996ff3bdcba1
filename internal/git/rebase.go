package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	carveerrors "carve.dev/carve/internal/errors"
)

// RebaseOnto replays the commits in (upstream, branchName] onto onto and
// leaves branchName checked out at the result. A conflict stops the rebase
// in place and returns a *errors.RebaseConflictError.
func (r *realRunner) RebaseOnto(ctx context.Context, onto, upstream, branchName string) error {
	_, err := r.cmd.RunWithEnv(ctx, nonInteractiveEnv, "-c", "core.editor=true", "rebase", "--onto", onto, upstream, branchName)
	if err == nil {
		return nil
	}

	if op, opErr := r.OperationInProgress(ctx); opErr == nil && op == OperationRebase {
		return carveerrors.NewRebaseConflictError(branchName,
			"resolve the conflicts and run 'git rebase --continue', or 'git rebase --abort' to give up")
	}
	return fmt.Errorf("failed to rebase %s onto %s: %w", branchName, shortHash(onto), err)
}

// OperationInProgress reports which multi-step operation, if any, has been
// left unfinished in this working tree
func (r *realRunner) OperationInProgress(ctx context.Context) (Operation, error) {
	gitDir, err := r.cmd.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return OperationNone, fmt.Errorf("failed to locate git dir: %w", err)
	}

	markers := []struct {
		path string
		op   Operation
	}{
		// rebase-merge is the interactive/merge backend, rebase-apply the am backend
		{"rebase-merge", OperationRebase},
		{"rebase-apply", OperationRebase},
		{"MERGE_HEAD", OperationMerge},
		{"CHERRY_PICK_HEAD", OperationCherryPick},
		{"REVERT_HEAD", OperationRevert},
	}
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(gitDir, m.path)); err == nil {
			return m.op, nil
		}
	}
	return OperationNone, nil
}
