package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/git"
	"carve.dev/carve/internal/tui"
)

const recipeMove = "move"

// MoveOptions configures MoveCommit
type MoveOptions struct {
	// RemoveFromSource drops the commit from the current branch once it is on dest
	RemoveFromSource bool
	// AutoStash stashes uncommitted changes for the duration of the move
	AutoStash bool
	// Push pushes dest to the configured remote
	Push bool
	// Force pushes with --force-with-lease
	Force bool
}

// moveRun is the state one Move-Commit run threads through its steps
type moveRun struct {
	source     string
	sourceTip  string
	hash       string
	stashHash  string
	tempDir    string
	worktree   string
	remoteOnly bool
}

// MoveCommit cherry-picks the commit at ref onto dest and returns dest.
//
// dest is checked out in a linked worktree under a temporary directory, so
// the current checkout is never switched. The worktree is removed on every
// exit path. A dest that only exists on the remote is created locally from
// the remote-tracking branch.
func (r *Rewriter) MoveCommit(ctx context.Context, ref, dest string, opts MoveOptions) (string, error) {
	m := &moveRun{}
	defer r.restoreStash(ctx, m)
	defer r.removeMoveWorktree(ctx, m)

	steps := []Step{
		{Name: "check working tree", Run: func(ctx context.Context) error {
			return r.stashIfDirty(ctx, m, opts.AutoStash)
		}},
		{Name: "resolve commit", Run: func(ctx context.Context) error {
			var err error
			m.source, err = r.runner.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			m.sourceTip, err = r.runner.ResolveRef(ctx, m.source)
			if err != nil {
				return err
			}
			m.hash, err = r.runner.ResolveRef(ctx, ref)
			return err
		}},
		{Name: "resolve destination", Run: func(ctx context.Context) error {
			return r.resolveDestination(ctx, m, dest)
		}},
		{Name: "create worktree", Run: func(ctx context.Context) error {
			return r.addMoveWorktree(ctx, m, dest)
		}},
		{Name: "cherry-pick", Run: func(ctx context.Context) error {
			return r.runner.InDir(m.worktree).CherryPick(ctx, m.hash)
		}},
	}
	if opts.Push {
		steps = append(steps, Step{Name: "push", Run: func(ctx context.Context) error {
			return r.runner.InDir(m.worktree).PushBranch(ctx, dest, r.remote(), opts.Force)
		}})
	}
	if opts.RemoveFromSource {
		steps = append(steps, Step{Name: "remove from source", Run: func(ctx context.Context) error {
			_, err := r.RemoveCommit(ctx, m.hash, RemoveOptions{Branch: m.source, Push: opts.Push, Force: opts.Force})
			return err
		}})
	}

	if err := r.run(ctx, Recipe{Name: recipeMove, Steps: steps}); err != nil {
		return "", err
	}

	return dest, nil
}

// stashIfDirty stashes uncommitted changes when allowed, or refuses to start
func (r *Rewriter) stashIfDirty(ctx context.Context, m *moveRun, autoStash bool) error {
	dirty, err := r.runner.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	if !autoStash {
		return carveerrors.NewStateConflictError(carveerrors.ErrDirtyWorktree,
			"commit or stash your changes first, or pass --autostash")
	}

	label := fmt.Sprintf("carve-autostash-%d", time.Now().UnixNano())
	hash, err := r.runner.StashPush(ctx, label)
	if err != nil {
		return err
	}
	m.stashHash = hash
	if hash != "" {
		r.splog.Debug("Stashed changes as %s (%s)", label, hash)
	}
	return nil
}

func (r *Rewriter) resolveDestination(ctx context.Context, m *moveRun, dest string) error {
	if dest == m.source {
		return carveerrors.NewStateConflictError(nil, "%s is the current branch", dest)
	}

	local, err := r.runner.BranchExists(ctx, dest)
	if err != nil {
		return err
	}
	if local {
		return nil
	}

	remote, err := r.runner.RemoteBranchExists(ctx, r.remote(), dest)
	if err != nil {
		return err
	}
	if !remote {
		return carveerrors.NewStateConflictError(carveerrors.ErrBranchNotFound,
			"%s exists neither locally nor on %s", dest, r.remote())
	}
	m.remoteOnly = true
	return nil
}

func (r *Rewriter) addMoveWorktree(ctx context.Context, m *moveRun, dest string) error {
	dir, err := os.MkdirTemp("", "carve-move-*")
	if err != nil {
		return fmt.Errorf("failed to create worktree directory: %w", err)
	}
	m.tempDir = dir
	path := filepath.Join(dir, "worktree")

	if m.remoteOnly {
		err = r.runner.AddWorktreeNewBranch(ctx, path, dest, r.remote()+"/"+dest)
	} else {
		err = r.runner.AddWorktree(ctx, path, dest)
	}
	if err != nil {
		return err
	}
	m.worktree = path
	return nil
}

// removeMoveWorktree tears down the linked worktree and its temporary directory
func (r *Rewriter) removeMoveWorktree(ctx context.Context, m *moveRun) {
	if m.worktree != "" {
		if err := r.runner.RemoveWorktree(ctx, m.worktree); err != nil {
			r.splog.Warn("Failed to remove worktree %s: %v", m.worktree, err)
		}
	}
	if m.tempDir != "" {
		if err := os.RemoveAll(m.tempDir); err != nil {
			r.splog.Debug("Failed to remove %s: %v", m.tempDir, err)
		}
	}
}

// restoreStash pops the autostash unless an operation was left in progress,
// in which case the stash is kept and the user is told how to recover
func (r *Rewriter) restoreStash(ctx context.Context, m *moveRun) {
	if m.stashHash == "" {
		return
	}

	op, err := r.runner.OperationInProgress(ctx)
	if err != nil {
		r.splog.Debug("Could not check for an operation in progress: %v", err)
	}
	if err != nil || op != git.OperationNone {
		r.stashGuidance(m, op)
		return
	}

	if err := r.runner.StashPop(ctx, m.stashHash); err != nil {
		r.splog.Warn("Failed to restore your stashed changes: %v", err)
		r.stashGuidance(m, op)
		return
	}
	r.splog.Debug("Restored stashed changes")
}

func (r *Rewriter) stashGuidance(m *moveRun, op git.Operation) {
	if op != git.OperationNone {
		r.splog.Warn("A %s is in progress, so your stashed changes were not restored.", op)
	}
	r.splog.Tip("Your changes are saved in stash %s. Once the repository is settled, run 'git stash apply %s'.",
		tui.ColorHash(m.stashHash), m.stashHash)
	if m.sourceTip != "" {
		r.splog.Tip("To put %s back where it was, run 'git reset --hard %s' (see 'git reflog').", m.source, m.sourceTip)
	}
}
