package git

import (
	"context"
	"fmt"
)

// HardReset performs a hard reset to a specific revision
func (r *realRunner) HardReset(ctx context.Context, revision string) error {
	_, err := r.cmd.Run(ctx, "reset", "--hard", revision)
	if err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", revision, err)
	}
	return nil
}
