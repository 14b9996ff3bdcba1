// Package testhelpers provides shared test utilities: real git repositories
// in temp directories and a carve binary built once per test package.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	sharedBinaryPath string
	binaryOnce       sync.Once
	binaryErr        error
)

// GetSharedBinaryPath returns the carve binary path, building it on first
// use when TestMain has not already done so.
func GetSharedBinaryPath() string {
	binaryOnce.Do(func() {
		if sharedBinaryPath != "" {
			return
		}
		path, _, err := buildBinary()
		if err != nil {
			binaryErr = err
			return
		}
		sharedBinaryPath = path
	})
	return sharedBinaryPath
}

// GetBinaryError returns any error that occurred during binary building.
func GetBinaryError() error {
	return binaryErr
}

// TestMain builds the carve binary once, runs the package's tests and
// removes the binary afterwards.
func TestMain(m *testing.M, cleanup func()) {
	binaryPath, binaryCleanup, err := buildBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build carve binary: %v\n", err)
		os.Exit(1)
	}
	sharedBinaryPath = binaryPath

	code := m.Run()

	binaryCleanup()
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

// buildBinary builds ./cmd/carve into a temp directory and returns its path
// and a function removing it.
func buildBinary() (string, func(), error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", nil, fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "carve-test-binary-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	binaryPath := filepath.Join(tmpDir, "carve")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/carve")
	cmd.Dir = moduleRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to build: %s: %w", string(output), err)
	}

	return binaryPath, cleanup, nil
}

// findModuleRoot walks up the directory tree from startDir to find the module root
// (directory containing go.mod file).
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
