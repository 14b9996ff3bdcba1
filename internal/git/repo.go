package git

import (
	"fmt"
	"os"
)

// GetRepoRoot returns the root directory of the git working tree containing dir.
// An empty dir means the process working directory.
func GetRepoRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := OpenRepository(dir)
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	return repo.GetRepoRoot()
}
