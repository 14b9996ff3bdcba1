package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo is a real git repository on disk used by tests.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use git -c flags to avoid reading global config and set local configs
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w: %s", err, out)
	}

	// Configure Git user (required for commits)
	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "commit.gpgsign", "false"); err != nil {
		return nil, err
	}

	return repo, nil
}

// runGitCommand executes a git command in the repository directory.
// Uses GIT_CONFIG_GLOBAL=/dev/null to avoid reading global config.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return nil
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes content to a path relative to the repository root.
func (r *GitRepo) WriteFile(name, content string) error {
	filePath := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadFile reads a file relative to the repository root.
func (r *GitRepo) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateChange writes textValue to <prefix>_test.txt and optionally stages it.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	if err := r.WriteFile(fileName, textValue); err != nil {
		return err
	}
	if !unstaged {
		return r.runGitCommand("add", fileName)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it with textValue as the message.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", textValue)
}

// CommitFile writes a file and commits it with message.
func (r *GitRepo) CommitFile(name, content, message string) error {
	if err := r.WriteFile(name, content); err != nil {
		return err
	}
	if err := r.runGitCommand("add", name); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", message)
}

// CreateBranch creates a new branch without checking it out.
func (r *GitRepo) CreateBranch(name string) error {
	return r.runGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out a branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", name)
}

// CheckoutDetached checks out a revision with a detached HEAD.
func (r *GitRepo) CheckoutDetached(rev string) error {
	return r.runGitCommand("checkout", "--detach", rev)
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// GetCommitCount returns the number of commits between two refs.
func (r *GitRepo) GetCommitCount(from, to string) (int, error) {
	return r.countCommits(from + ".." + to)
}

// CountCommits returns the number of commits reachable from ref.
func (r *GitRepo) CountCommits(ref string) (int, error) {
	return r.countCommits(ref)
}

func (r *GitRepo) countCommits(rangeSpec string) (int, error) {
	output, err := r.RunGitCommandAndGetOutput("rev-list", "--count", rangeSpec)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(output, "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse commit count: %w", err)
	}
	return count, nil
}

// ListCurrentBranchCommitMessages returns the commit subjects on the current branch, newest first.
func (r *GitRepo) ListCurrentBranchCommitMessages() ([]string, error) {
	return r.ListSubjects("HEAD")
}

// ListSubjects returns the commit subjects reachable from ref, newest first.
func (r *GitRepo) ListSubjects(ref string) ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s", ref)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// StashCount returns the number of stash entries.
func (r *GitRepo) StashCount() (int, error) {
	output, err := r.RunGitCommandAndGetOutput("stash", "list")
	if err != nil {
		return 0, err
	}
	return len(splitLines(output)), nil
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// CreateBareRemote creates a bare git repository to act as a remote.
// Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	// Sibling directory named after the repo dir, so each test gets its own remote
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	if err := r.runGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}

	return bareDir, nil
}

// PushBranch pushes a branch to a remote.
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.runGitCommand("push", "-u", remote, branch)
}
