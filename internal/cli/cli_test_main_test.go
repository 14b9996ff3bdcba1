package cli_test

import (
	"os/exec"
	"testing"

	"carve.dev/carve/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}

// getCarveBinary returns the path to the pre-built carve binary.
func getCarveBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build carve binary: %v", err)
		}
		t.Fatal("carve binary not built")
	}
	return binaryPath
}

// runCarve runs the binary in the scene's repository and returns its combined output
func runCarve(t *testing.T, scene *testhelpers.Scene, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getCarveBinary(t), args...)
	cmd.Dir = scene.Dir
	output, err := cmd.CombinedOutput()
	return string(output), err
}
