// Package rewrite implements the history rewrite recipes behind carve's
// commands: splitting a commit, inserting a commit, removing a commit and
// moving a commit to another branch.
//
// Each recipe is a sequence of named steps run against a git.Runner. A step
// that fails stops the recipe and is returned as an *errors.StepError naming
// the recipe and the step. Nothing is rolled back: a failure partway through
// leaves the repository where git stopped, mid-rebase or mid-cherry-pick
// included, for the user to resolve or abort with git itself.
//
// A Rewriter must not be used by more than one caller at a time against the
// same working tree. The working tree and index are shared state that no
// recipe guards.
package rewrite
