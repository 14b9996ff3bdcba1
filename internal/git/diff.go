package git

import (
	"context"
	"fmt"
)

// ShowCommitPatch returns the combined diff a commit introduces relative to
// its first parent. Renames are shown as delete plus add so every section
// carries content hunks.
func (r *realRunner) ShowCommitPatch(ctx context.Context, hash string) (string, error) {
	out, err := r.cmd.RunRaw(ctx, "show", "--format=", "--no-color", "--no-ext-diff", "--no-renames", hash)
	if err != nil {
		return "", fmt.Errorf("failed to show patch for %s: %w", hash, err)
	}
	return out, nil
}
