package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"carve.dev/carve/testhelpers"
)

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		config, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, Default(), config)
		require.Equal(t, "origin", config.Remote)
		require.Equal(t, "split commit", config.SplitSubjectFallback)
		require.False(t, config.KeepPatches)
	})

	t.Run("reads values from the config file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		err := SaveRepoConfig(scene.Dir, &RepoConfig{
			Remote:               stringPtr("upstream"),
			KeepPatches:          boolPtr(true),
			SplitSubjectFallback: stringPtr("piece"),
		})
		require.NoError(t, err)

		config, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, Config{Remote: "upstream", KeepPatches: true, SplitSubjectFallback: "piece"}, config)
	})

	t.Run("ignores empty strings in the file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		require.NoError(t, SaveRepoConfig(scene.Dir, &RepoConfig{Remote: stringPtr("")}))

		config, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "origin", config.Remote)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, SaveRepoConfig(scene.Dir, &RepoConfig{Remote: stringPtr("upstream"), KeepPatches: boolPtr(false)}))

		t.Setenv("CARVE_REMOTE", "fork")
		t.Setenv("CARVE_KEEP_PATCHES", "1")

		config, err := Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "fork", config.Remote)
		require.True(t, config.KeepPatches)
	})

	t.Run("rejects an invalid boolean override", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		t.Setenv("CARVE_KEEP_PATCHES", "sometimes")

		_, err := Load(scene.Dir)
		require.Error(t, err)
	})

	t.Run("fails on a corrupt file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, os.WriteFile(ConfigPath(scene.Dir), []byte("{not json"), 0600))

		_, err := GetRepoConfig(scene.Dir)
		require.Error(t, err)
	})
}
