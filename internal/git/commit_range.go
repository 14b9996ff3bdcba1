package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	carveerrors "carve.dev/carve/internal/errors"
)

// ListCommits returns the hashes of the commits in (base, head], oldest first,
// following first parents from head. base must be a first-parent ancestor of
// head; otherwise the result is a state conflict matching errors.ErrNotAncestor.
func (r *realRunner) ListCommits(ctx context.Context, base, head string) ([]string, error) {
	baseHash, err := r.ResolveRef(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base: %w", err)
	}
	headHash, err := r.ResolveRef(ctx, head)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head: %w", err)
	}

	repo, err := r.repo()
	if err != nil {
		return nil, err
	}

	commits, err := firstParentRange(repo, plumbing.NewHash(headHash), plumbing.NewHash(baseHash))
	if err != nil {
		return nil, err
	}

	hashes := make([]string, len(commits))
	for i, commit := range commits {
		hashes[len(commits)-1-i] = commit.Hash.String()
	}
	return hashes, nil
}

// firstParentRange walks first parents from head until base, newest first
func firstParentRange(repo *Repository, headHash, baseHash plumbing.Hash) ([]*object.Commit, error) {
	var commits []*object.Commit
	hash := headHash
	for hash != baseHash {
		commit, err := repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}
		commits = append(commits, commit)

		if commit.NumParents() == 0 {
			return nil, carveerrors.NewStateConflictError(carveerrors.ErrNotAncestor,
				"%s is not on the first-parent history of %s", shortHash(baseHash.String()), shortHash(headHash.String()))
		}
		hash = commit.ParentHashes[0]
	}
	return commits, nil
}
