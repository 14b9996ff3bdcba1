// Package patch implements the hunk algebra used to rewrite commits.
//
// It parses combined `git show`/`git diff` output into per-file sections and
// hunks, splits a single hunk into two well-formed hunks at a new-file line,
// a column inside a line, or a raw body index, and rebuilds hunk text with
// header counts recomputed from the body. Nothing here talks to git; the
// package only transforms text.
package patch
