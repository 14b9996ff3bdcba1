package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository wraps a go-git repository
type Repository struct {
	*git.Repository
	path string
}

// OpenRepository opens the git repository containing path. Linked worktrees
// are supported: their objects and refs live in the common git directory.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

// GetRepoRoot returns the root directory of the working tree
func (r *Repository) GetRepoRoot() (string, error) {
	worktree, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// GetCurrentBranch returns the current branch name
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", errHeadDetached
	}

	return head.Target().Short(), nil
}

// resolveRefHash resolves a branch, remote branch, tag, hash or revision expression
func (r *Repository) resolveRefHash(ref string) (plumbing.Hash, error) {
	// 1. Try as a full reference name
	if found, err := r.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return found.Hash(), nil
	}

	// 2. Try as a local branch
	if found, err := r.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
		return found.Hash(), nil
	}

	// 3. Try as a tag
	if found, err := r.Reference(plumbing.NewTagReferenceName(ref), true); err == nil {
		return r.peelToCommit(found.Hash()), nil
	}

	// 4. Try ResolveRevision (handles SHAs, short SHAs, remote branches and HEAD~1)
	hash, err := r.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return *hash, nil
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}

// peelToCommit follows an annotated tag to the commit it points at
func (r *Repository) peelToCommit(hash plumbing.Hash) plumbing.Hash {
	tag, err := r.TagObject(hash)
	if err != nil {
		return hash
	}
	commit, err := tag.Commit()
	if err != nil {
		return hash
	}
	return commit.Hash
}
