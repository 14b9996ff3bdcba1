package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// IsAncestor checks if the first ref is an ancestor of the second ref.
// A commit counts as its own ancestor.
func (r *realRunner) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	ancestorHash, err := r.ResolveRef(ctx, ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to resolve ancestor ref: %w", err)
	}

	descendantHash, err := r.ResolveRef(ctx, descendant)
	if err != nil {
		return false, fmt.Errorf("failed to resolve descendant ref: %w", err)
	}

	if ancestorHash == descendantHash {
		return true, nil
	}

	repo, err := r.repo()
	if err != nil {
		return false, err
	}

	ancestorCommit, err := repo.CommitObject(plumbing.NewHash(ancestorHash))
	if err != nil {
		return false, fmt.Errorf("failed to get ancestor commit: %w", err)
	}

	descendantCommit, err := repo.CommitObject(plumbing.NewHash(descendantHash))
	if err != nil {
		return false, fmt.Errorf("failed to get descendant commit: %w", err)
	}

	return ancestorCommit.IsAncestor(descendantCommit)
}
