package testhelpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carve.dev/carve/testhelpers"
)

func TestLinearScene(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.LinearSceneSetup)

	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	testhelpers.ExpectCommits(t, scene.Repo, "main", "3", "2", "1")

	count, err := scene.Repo.CountCommits("main")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	content, err := scene.Repo.ReadFile("2_test.txt")
	require.NoError(t, err)
	require.Equal(t, "2", content)
}

func TestExpectBranches(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
	require.NoError(t, scene.Repo.CreateBranch("bugfix"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))

	testhelpers.ExpectBranches(t, scene.Repo, []string{"main", "feature", "bugfix"})
}

func TestBareRemote(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	local, err := scene.Repo.GetRevision("main")
	require.NoError(t, err)
	remote, err := scene.Repo.GetRevision("origin/main")
	require.NoError(t, err)
	require.Equal(t, local, remote)
}

func TestStashCount(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	count, err := scene.Repo.StashCount()
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, scene.Repo.WriteFile("1_test.txt", "changed"))
	require.NoError(t, scene.Repo.RunGitCommand("stash"))

	count, err = scene.Repo.StashCount()
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
