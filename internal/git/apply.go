package git

import (
	"context"
	"fmt"
)

// ApplyPatch applies a patch file to the working tree.
//
// Tolerant mode recomputes hunk line counts, accepts hunks with no context
// and positions them by their new-side start. ThreeWay falls back to a
// three-way merge and updates the index as well.
func (r *realRunner) ApplyPatch(ctx context.Context, patchFile string, opts ApplyOptions) error {
	args := []string{"apply"}
	if opts.Tolerant {
		args = append(args, "--recount", "--unidiff-zero", "-C1", "--whitespace=nowarn")
	}
	if opts.ThreeWay {
		args = append(args, "--3way")
	}
	args = append(args, patchFile)

	if _, err := r.cmd.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to apply patch %s: %w", patchFile, err)
	}
	return nil
}
