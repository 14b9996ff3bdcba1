// Package scenario provides a high-level test scenario that combines a Scene,
// a git runner and a runtime Context to provide a terse API for recipe tests.
package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"carve.dev/carve/internal/config"
	"carve.dev/carve/internal/git"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
	"carve.dev/carve/testhelpers"
)

// Scenario represents a high-level test scenario that combines a Scene,
// a git runner and a runtime Context.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Runner  git.Runner
	Context *runtime.Context
	Output  *bytes.Buffer
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv and NewScene.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)

	output := &bytes.Buffer{}
	splog, err := tui.NewSplogWithConfig(output, "")
	require.NoError(t, err)

	runner := git.NewRunner(scene.Dir)
	ctx := runtime.NewContext(context.Background(), runner, splog, config.Default(), scene.Dir)

	return &Scenario{
		T:       t,
		Scene:   scene,
		Runner:  runner,
		Context: ctx,
		Output:  output,
	}
}

// Rewriter returns a Rewriter for the scenario's repository
func (s *Scenario) Rewriter(opts ...rewrite.Option) *rewrite.Rewriter {
	return s.Context.Rewriter(opts...)
}

// WithUncommittedChange creates an uncommitted change in the repository.
func (s *Scenario) WithUncommittedChange(name string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CreateChange("unstaged content", name, true)
	require.NoError(s.T, err)
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.RunGitCommand(args...)
	require.NoError(s.T, err)
	return s
}

// Checkout checks out a branch.
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CheckoutBranch(branch)
	require.NoError(s.T, err)
	return s
}

// CreateBranch creates and checks out a new branch.
func (s *Scenario) CreateBranch(name string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CreateAndCheckoutBranch(name)
	require.NoError(s.T, err)
	return s
}

// CommitChange creates a file change and commits it.
func (s *Scenario) CommitChange(name, message string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CreateChangeAndCommit(message, name)
	require.NoError(s.T, err)
	return s
}

// CommitFile writes a file with content and commits it.
func (s *Scenario) CommitFile(name, content, message string) *Scenario {
	s.T.Helper()
	err := s.Scene.Repo.CommitFile(name, content, message)
	require.NoError(s.T, err)
	return s
}

// Rev resolves a revision to its hash.
func (s *Scenario) Rev(rev string) string {
	s.T.Helper()
	hash, err := s.Scene.Repo.GetRevision(rev)
	require.NoError(s.T, err)
	return hash
}

// Subjects returns the commit subjects reachable from ref, newest first.
func (s *Scenario) Subjects(ref string) []string {
	s.T.Helper()
	subjects, err := s.Scene.Repo.ListSubjects(ref)
	require.NoError(s.T, err)
	return subjects
}

// FileAt returns the content of path in the tree of rev.
func (s *Scenario) FileAt(rev, path string) string {
	s.T.Helper()
	content, err := s.Scene.Repo.RunGitCommandAndGetOutput("show", rev+":"+path)
	require.NoError(s.T, err)
	return content
}

// ExpectSubjects asserts the subjects reachable from ref, newest first.
func (s *Scenario) ExpectSubjects(ref string, expected ...string) *Scenario {
	s.T.Helper()
	require.Equal(s.T, expected, s.Subjects(ref), "subjects of %s", ref)
	return s
}

// ExpectClean asserts that the working tree has no uncommitted changes.
func (s *Scenario) ExpectClean() *Scenario {
	s.T.Helper()
	dirty, err := s.Runner.HasUncommittedChanges(context.Background())
	require.NoError(s.T, err)
	require.False(s.T, dirty, "working tree should be clean")
	return s
}
