package testhelpers

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	require.NoError(t, err, "Failed to list branches")

	branches := splitLines(output)
	sort.Strings(branches)
	expected = append([]string(nil), expected...)
	sort.Strings(expected)

	require.Equal(t, expected, branches, "Branches do not match")
}

// ExpectCommits asserts that the newest commits on branch have the expected
// subjects, newest first. Older commits are not compared.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected ...string) {
	t.Helper()

	subjects, err := repo.ListSubjects(branch)
	require.NoError(t, err, "Failed to list commits")
	if len(subjects) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits on %s, got %d: %s",
			len(expected), branch, len(subjects), strings.Join(subjects, ", "))
		return
	}

	require.Equal(t, expected, subjects[:len(expected)], "Commits on %s do not match", branch)
}
