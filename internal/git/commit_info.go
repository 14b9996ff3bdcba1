package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	carveerrors "carve.dev/carve/internal/errors"
)

// ResolveRef returns the full commit hash a ref names. go-git is tried first;
// expressions it cannot handle fall back to git rev-parse.
func (r *realRunner) ResolveRef(ctx context.Context, ref string) (string, error) {
	repo, err := r.repo()
	if err != nil {
		return "", err
	}

	if hash, err := repo.resolveRefHash(ref); err == nil {
		return hash.String(), nil
	}

	out, err := r.cmd.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return out, nil
}

// ParentOf returns the first parent of a commit. A root commit is a state
// conflict matching errors.ErrRootCommit.
func (r *realRunner) ParentOf(ctx context.Context, hash string) (string, error) {
	commit, err := r.commitObject(ctx, hash)
	if err != nil {
		return "", err
	}
	if commit.NumParents() == 0 {
		return "", carveerrors.NewStateConflictError(carveerrors.ErrRootCommit, "commit %s", shortHash(commit.Hash.String()))
	}
	return commit.ParentHashes[0].String(), nil
}

// CommitSubject returns the first line of a commit message
func (r *realRunner) CommitSubject(ctx context.Context, hash string) (string, error) {
	commit, err := r.commitObject(ctx, hash)
	if err != nil {
		return "", err
	}
	return subjectOf(commit), nil
}

// RecentCommits returns up to limit commits reachable from HEAD, newest first
func (r *realRunner) RecentCommits(_ context.Context, limit int) ([]CommitInfo, error) {
	repo, err := r.repo()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var commits []CommitInfo
	for len(commits) < limit {
		commit, err := iter.Next()
		if err != nil {
			break
		}
		commits = append(commits, CommitInfo{Hash: commit.Hash.String(), Subject: subjectOf(commit)})
	}
	return commits, nil
}

func (r *realRunner) commitObject(ctx context.Context, ref string) (*object.Commit, error) {
	hash, err := r.ResolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	repo, err := r.repo()
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", shortHash(hash), err)
	}
	return commit, nil
}

func subjectOf(commit *object.Commit) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(commit.Message), "\n")
	return strings.TrimSpace(subject)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
