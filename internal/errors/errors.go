// Package errors provides sentinel errors and custom error types for carve.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of a rewrite
var (
	// ErrParseFailure indicates that a hunk or patch did not match the expected grammar
	ErrParseFailure = errors.New("parse failure")

	// ErrSplitOutOfRange indicates that a split point resolves to the start or end of a hunk body
	ErrSplitOutOfRange = errors.New("split point out of range")

	// ErrStructuralLimitation indicates an input shape that is explicitly unsupported
	ErrStructuralLimitation = errors.New("unsupported structure")

	// ErrStateConflict indicates that the repository is not in a state the operation can start from
	ErrStateConflict = errors.New("repository state conflict")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch exists neither locally nor on the remote
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNotAncestor indicates that a commit is not reachable from the branch being rewritten
	ErrNotAncestor = errors.New("commit is not an ancestor of the branch")

	// ErrRootCommit indicates an attempt to rewrite around a commit with no parent
	ErrRootCommit = errors.New("commit has no parent")

	// ErrDirtyWorktree indicates uncommitted changes in the working tree
	ErrDirtyWorktree = errors.New("working tree has uncommitted changes")

	// ErrNoCommitsAfter indicates that no commits exist after the requested insertion point
	ErrNoCommitsAfter = errors.New("no commits after the given ref")

	// ErrRebaseConflict indicates that a rebase operation stopped on a conflict
	ErrRebaseConflict = errors.New("rebase conflict")
)

// ParseError represents text that could not be parsed as a hunk or patch
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	line := e.Input
	if len(line) > 60 {
		line = line[:60] + "..."
	}
	if line == "" {
		return fmt.Sprintf("parse failure: %s", e.Reason)
	}
	return fmt.Sprintf("parse failure: %s: %q", e.Reason, line)
}

// Is returns true if the target error is ErrParseFailure
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

// NewParseError creates a new ParseError
func NewParseError(input, reason string) *ParseError {
	return &ParseError{Input: input, Reason: reason}
}

// SplitOutOfRangeError represents a split point that would produce an empty half
type SplitOutOfRangeError struct {
	Index  int
	Length int
	Line   int
	Column int
	Reason string
}

func (e *SplitOutOfRangeError) Error() string {
	msg := "split point out of range"
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column)
	}
	if e.Reason != "" {
		return msg + ": " + e.Reason
	}
	return msg + fmt.Sprintf(": index %d not inside hunk body of %d lines", e.Index, e.Length)
}

// Is returns true if the target error is ErrSplitOutOfRange
func (e *SplitOutOfRangeError) Is(target error) bool {
	return target == ErrSplitOutOfRange
}

// StructuralLimitationError represents an unsupported input shape
type StructuralLimitationError struct {
	Path   string
	Reason string
}

func (e *StructuralLimitationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unsupported: %s: %s", e.Path, e.Reason)
	}
	return "unsupported: " + e.Reason
}

// Is returns true if the target error is ErrStructuralLimitation
func (e *StructuralLimitationError) Is(target error) bool {
	return target == ErrStructuralLimitation
}

// NewStructuralLimitationError creates a new StructuralLimitationError
func NewStructuralLimitationError(path, reason string) *StructuralLimitationError {
	return &StructuralLimitationError{Path: path, Reason: reason}
}

// StateConflictError represents a precondition on repository state that does not hold.
// It matches ErrStateConflict and, when set, the more specific Cause.
type StateConflictError struct {
	Cause   error
	Message string
}

func (e *StateConflictError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Is returns true if the target error is ErrStateConflict
func (e *StateConflictError) Is(target error) bool {
	return target == ErrStateConflict
}

func (e *StateConflictError) Unwrap() error {
	return e.Cause
}

// NewStateConflictError creates a new StateConflictError
func NewStateConflictError(cause error, format string, args ...interface{}) *StateConflictError {
	return &StateConflictError{Cause: cause, Message: fmt.Sprintf(format, args...)}
}

// RebaseConflictError represents an error when a rebase stops on a conflict
type RebaseConflictError struct {
	BranchName string
	Message    string
}

func (e *RebaseConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rebase conflict on branch %s: %s", e.BranchName, e.Message)
	}
	return fmt.Sprintf("rebase conflict on branch %s", e.BranchName)
}

// Is returns true if the target error is ErrRebaseConflict
func (e *RebaseConflictError) Is(target error) bool {
	return target == ErrRebaseConflict
}

// NewRebaseConflictError creates a new RebaseConflictError
func NewRebaseConflictError(branchName string, message string) *RebaseConflictError {
	return &RebaseConflictError{
		BranchName: branchName,
		Message:    message,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// StepError records which step of which recipe failed
type StepError struct {
	Recipe string
	Step   string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Recipe, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(recipe, step string, err error) *StepError {
	return &StepError{Recipe: recipe, Step: step, Err: err}
}
