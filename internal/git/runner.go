// Package git provides a wrapper around git commands and go-git for repository operations.
package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	carveerrors "carve.dev/carve/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// ErrStaleRemoteInfo indicates that a push failed because the remote has changed
var ErrStaleRemoteInfo = errors.New("stale info")

// nonInteractiveEnv keeps git from opening an editor during cherry-pick and rebase
var nonInteractiveEnv = []string{"GIT_EDITOR=true", "GIT_SEQUENCE_EDITOR=true"}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, "", true, args...)
}

// RunRaw executes a git command and returns the output untouched
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, "", false, args...)
}

// RunWithEnv executes a git command with extra environment variables
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, env, "", true, args...)
}

// RunLines executes a git command and returns its output as lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// runInternal is the internal implementation that handles directory, environment and input
func (r *CommandRunner) runInternal(ctx context.Context, env []string, input string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", carveerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", carveerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// Operation names a multi-step git operation that can be left in progress
type Operation string

const (
	// OperationNone means no operation is in progress
	OperationNone Operation = ""
	// OperationRebase is an interrupted rebase
	OperationRebase Operation = "rebase"
	// OperationMerge is an interrupted merge
	OperationMerge Operation = "merge"
	// OperationCherryPick is an interrupted cherry-pick
	OperationCherryPick Operation = "cherry-pick"
	// OperationRevert is an interrupted revert
	OperationRevert Operation = "revert"
)

// ApplyOptions controls how a patch file is applied
type ApplyOptions struct {
	// Tolerant recounts hunk headers and accepts hunks without context
	Tolerant bool
	// ThreeWay falls back to a three-way merge using the blobs recorded in the patch
	ThreeWay bool
}

// CommitInfo is a commit hash with its subject line
type CommitInfo struct {
	Hash    string
	Subject string
}

// Runner defines the git primitives the rewrite recipes are built from.
// A Runner acts on one working tree; it is not safe for concurrent use
// against the same working tree.
type Runner interface {
	// Dir returns the working tree the runner acts on
	Dir() string
	// InDir returns a runner for another working tree of the same repository
	InDir(dir string) Runner

	// Commits and refs
	ResolveRef(ctx context.Context, ref string) (string, error)
	ParentOf(ctx context.Context, hash string) (string, error)
	CommitSubject(ctx context.Context, hash string) (string, error)
	ShowCommitPatch(ctx context.Context, hash string) (string, error)
	ListCommits(ctx context.Context, base, head string) ([]string, error)
	RecentCommits(ctx context.Context, limit int) ([]CommitInfo, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	BranchExists(ctx context.Context, branchName string) (bool, error)
	RemoteBranchExists(ctx context.Context, remote, branchName string) (bool, error)

	// Working tree and history
	HardReset(ctx context.Context, revision string) error
	UpdateBranchRef(ctx context.Context, branchName, revision string) error
	ApplyPatch(ctx context.Context, patchFile string, opts ApplyOptions) error
	StageAll(ctx context.Context) error
	HasStagedChanges(ctx context.Context) (bool, error)
	HasUncommittedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) (string, error)
	CherryPick(ctx context.Context, hash string) error
	RebaseOnto(ctx context.Context, onto, upstream, branchName string) error
	OperationInProgress(ctx context.Context) (Operation, error)

	// Worktrees
	AddWorktree(ctx context.Context, path, branchName string) error
	AddWorktreeNewBranch(ctx context.Context, path, branchName, startPoint string) error
	AddWorktreeDetached(ctx context.Context, path, revision string) error
	RemoveWorktree(ctx context.Context, path string) error

	// Stash and remotes
	StashPush(ctx context.Context, message string) (string, error)
	StashPop(ctx context.Context, stashHash string) error
	PushBranch(ctx context.Context, branchName, remote string, forceWithLease bool) error
}

// NewRunner returns the Runner backed by the git binary and go-git for the
// working tree at dir. An empty dir means the process working directory.
func NewRunner(dir string) Runner {
	return &realRunner{workingDir: dir, cmd: NewCommandRunner(dir)}
}

// realRunner implements Runner with the git binary for writes and go-git for reads
type realRunner struct {
	workingDir string
	cmd        *CommandRunner
}

func (r *realRunner) Dir() string {
	return r.workingDir
}

func (r *realRunner) InDir(dir string) Runner {
	return NewRunner(dir)
}

// repo opens the repository fresh on every call: the git binary keeps
// writing refs and objects between reads.
func (r *realRunner) repo() (*Repository, error) {
	dir := r.workingDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	return OpenRepository(dir)
}
