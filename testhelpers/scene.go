package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is a test scene: a temporary directory holding a git repository,
// with the process working directory moved into it for the test's duration.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// Cleanup is registered with t.Cleanup. Set DEBUG to keep the directory.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "carve-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	// Resolve symlinks (macOS /var -> /private/var) so paths compare equal to git's
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
			_ = os.RemoveAll(tmpDir + "-origin.git")
		}
	})

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	scene.isolateEnvironment(t)

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// isolateEnvironment keeps git and carve away from the developer's own
// configuration, log file and terminal.
func (s *Scene) isolateEnvironment(t *testing.T) {
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("CARVE_LOG_FILE", filepath.Join(s.Dir, ".git", "carve-test.log"))
	t.Setenv("CARVE_TEST_NO_INTERACTIVE", "1")
	t.Setenv("CARVE_KEEP_PATCHES", "")
	t.Setenv("CARVE_REMOTE", "")
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// LinearSceneSetup creates three commits "1", "2" and "3" on main, each
// touching its own file.
func LinearSceneSetup(scene *Scene) error {
	for _, msg := range []string{"1", "2", "3"} {
		if err := scene.Repo.CreateChangeAndCommit(msg, msg); err != nil {
			return err
		}
	}
	return nil
}
