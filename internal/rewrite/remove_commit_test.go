package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/testhelpers"
	"carve.dev/carve/testhelpers/scenario"
)

func TestRemoveCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a commit from the middle of the branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)

		branch, err := s.Rewriter().RemoveCommit(ctx, "HEAD~1", rewrite.RemoveOptions{})
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		s.ExpectSubjects("main", "3", "1")
		s.ExpectClean()
		current, err := s.Scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", current)
	})

	t.Run("removes the tip of the current branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)
		parent := s.Rev("HEAD~1")

		_, err := s.Rewriter().RemoveCommit(ctx, "HEAD", rewrite.RemoveOptions{})
		require.NoError(t, err)

		s.ExpectSubjects("main", "2", "1")
		require.Equal(t, parent, s.Rev("HEAD"))
		s.ExpectClean()
	})

	t.Run("moves the ref of a branch that is not checked out", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)
		s.RunGit("branch", "other")
		s.CommitChange("4", "4")
		mainTip := s.Rev("main")

		branch, err := s.Rewriter().RemoveCommit(ctx, "other", rewrite.RemoveOptions{Branch: "other"})
		require.NoError(t, err)
		require.Equal(t, "other", branch)

		s.ExpectSubjects("other", "2", "1")
		require.Equal(t, mainTip, s.Rev("main"))
	})

	t.Run("refuses commits that are not on the branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)
		s.CreateBranch("feature").CommitChange("f", "feature work")
		featureTip := s.Rev("feature")
		s.Checkout("main")

		_, err := s.Rewriter().RemoveCommit(ctx, featureTip, rewrite.RemoveOptions{})
		require.ErrorIs(t, err, carveerrors.ErrStateConflict)
		require.ErrorIs(t, err, carveerrors.ErrNotAncestor)
		s.ExpectSubjects("main", "3", "2", "1")
	})

	t.Run("refuses to remove the root commit", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)

		_, err := s.Rewriter().RemoveCommit(ctx, "HEAD~2", rewrite.RemoveOptions{})
		require.ErrorIs(t, err, carveerrors.ErrRootCommit)
		s.ExpectSubjects("main", "3", "2", "1")
	})

	t.Run("refuses a branch that does not exist", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)

		_, err := s.Rewriter().RemoveCommit(ctx, "HEAD", rewrite.RemoveOptions{Branch: "nope"})
		require.ErrorIs(t, err, carveerrors.ErrBranchNotFound)
	})

	t.Run("pushes the rewritten branch with a lease", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.LinearSceneSetup)
		_, err := s.Scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, s.Scene.Repo.PushBranch("origin", "main"))

		_, err = s.Rewriter().RemoveCommit(ctx, "HEAD~1", rewrite.RemoveOptions{Push: true, Force: true})
		require.NoError(t, err)

		s.ExpectSubjects("origin/main", "3", "1")
	})
}
