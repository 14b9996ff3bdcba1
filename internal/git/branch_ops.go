package git

import (
	"context"
	"fmt"
	"strings"
)

// StashPush stashes tracked and untracked changes under message and returns
// the stash commit hash. An empty hash means there was nothing to stash.
func (r *realRunner) StashPush(ctx context.Context, message string) (string, error) {
	args := []string{"stash", "push", "-u"}
	if message != "" {
		args = append(args, "-m", message)
	}
	output, err := r.cmd.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("stash push failed: %w", err)
	}
	if strings.Contains(output, "No local changes to save") {
		return "", nil
	}

	hash, err := r.cmd.Run(ctx, "rev-parse", "refs/stash")
	if err != nil {
		return "", fmt.Errorf("failed to read stash ref: %w", err)
	}
	return hash, nil
}

// StashPop pops the stash entry whose commit is stashHash. Entries pushed
// on top of it in the meantime are left alone.
func (r *realRunner) StashPop(ctx context.Context, stashHash string) error {
	lines, err := r.cmd.RunLines(ctx, "stash", "list", "--format=%gd %H")
	if err != nil {
		return fmt.Errorf("failed to list stashes: %w", err)
	}

	for _, line := range lines {
		selector, hash, ok := strings.Cut(line, " ")
		if !ok || hash != stashHash {
			continue
		}
		if _, err := r.cmd.Run(ctx, "stash", "pop", selector); err != nil {
			return fmt.Errorf("stash pop of %s failed: %w", selector, err)
		}
		return nil
	}
	return fmt.Errorf("stash %s not found", shortHash(stashHash))
}
