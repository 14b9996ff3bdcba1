// Package git provides the low-level git primitives history rewrites are made of.
//
// It wraps git command execution and go-git reads behind the Runner interface:
//   - Refs and history (resolve, parent, subject, commit ranges, ancestry)
//   - Working tree writes (reset, apply, stage, commit, cherry-pick, rebase)
//   - Linked worktrees and stashes
//   - Pushing a rewritten branch
//
// This package should be the only place where direct git commands are executed.
package git
