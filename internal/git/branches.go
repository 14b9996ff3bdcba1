package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	carveerrors "carve.dev/carve/internal/errors"
)

var errHeadDetached = carveerrors.NewStateConflictError(carveerrors.ErrNotOnBranch, "HEAD is detached")

// CurrentBranch returns the branch HEAD points at. A detached HEAD is a
// state conflict matching errors.ErrNotOnBranch.
func (r *realRunner) CurrentBranch(_ context.Context) (string, error) {
	repo, err := r.repo()
	if err != nil {
		return "", err
	}
	return repo.GetCurrentBranch()
}

// BranchExists reports whether a local branch exists
func (r *realRunner) BranchExists(_ context.Context, branchName string) (bool, error) {
	repo, err := r.repo()
	if err != nil {
		return false, err
	}
	return referenceExists(repo, plumbing.NewBranchReferenceName(branchName))
}

// RemoteBranchExists reports whether a remote-tracking branch exists
func (r *realRunner) RemoteBranchExists(_ context.Context, remote, branchName string) (bool, error) {
	repo, err := r.repo()
	if err != nil {
		return false, err
	}
	return referenceExists(repo, plumbing.NewRemoteReferenceName(remote, branchName))
}

// UpdateBranchRef updates a branch reference to point to a new commit
func (r *realRunner) UpdateBranchRef(ctx context.Context, branchName, revision string) error {
	_, err := r.cmd.Run(ctx, "update-ref", "refs/heads/"+branchName, revision)
	if err != nil {
		return fmt.Errorf("failed to update branch ref %s: %w", branchName, err)
	}
	return nil
}

func referenceExists(repo *Repository, name plumbing.ReferenceName) (bool, error) {
	_, err := repo.Reference(name, true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to read reference %s: %w", name, err)
}

// ListBranchNames returns the local branch names of the repository containing dir
func ListBranchNames(dir string) ([]string, error) {
	repo, err := OpenRepository(dir)
	if err != nil {
		return nil, err
	}

	refs, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer refs.Close()

	var names []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return names, nil
}
