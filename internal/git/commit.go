package git

import (
	"context"
	"fmt"
)

// Commit records the staged changes with the given message and returns the
// new commit hash. Hooks run as usual; no editor is opened.
func (r *realRunner) Commit(ctx context.Context, message string) (string, error) {
	if _, err := r.cmd.RunWithEnv(ctx, nonInteractiveEnv, "commit", "-q", "-m", message); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	hash, err := r.cmd.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to read new commit: %w", err)
	}
	return hash, nil
}

// CherryPick replays a commit onto HEAD. Commits that become empty are kept.
func (r *realRunner) CherryPick(ctx context.Context, hash string) error {
	_, err := r.cmd.RunWithEnv(ctx, nonInteractiveEnv, "cherry-pick", "--allow-empty", hash)
	if err != nil {
		return fmt.Errorf("failed to cherry-pick %s: %w", shortHash(hash), err)
	}
	return nil
}
