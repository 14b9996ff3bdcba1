package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DefaultRemote is the remote pushes and remote-branch lookups use
	DefaultRemote = "origin"
	// DefaultSplitSubjectFallback is the subject used for split commits whose original subject is empty
	DefaultSplitSubjectFallback = "split commit"

	configFileName = ".carve_config"

	envKeepPatches = "CARVE_KEEP_PATCHES"
	envRemote      = "CARVE_REMOTE"
)

// RepoConfig is the on-disk repository configuration. Unset fields take defaults.
type RepoConfig struct {
	Remote               *string `json:"remote,omitempty"`
	KeepPatches          *bool   `json:"keepPatches,omitempty"`
	SplitSubjectFallback *string `json:"splitSubjectFallback,omitempty"`
}

// Config is the effective configuration: file values over defaults, environment over both.
type Config struct {
	Remote               string
	KeepPatches          bool
	SplitSubjectFallback string
}

// Default returns the configuration used when no file or environment overrides exist
func Default() Config {
	return Config{
		Remote:               DefaultRemote,
		KeepPatches:          false,
		SplitSubjectFallback: DefaultSplitSubjectFallback,
	}
}

// ConfigPath returns the path of the repository configuration file
func ConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", configFileName)
}

// GetRepoConfig reads the repository configuration file. A missing file is an empty config.
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(ConfigPath(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SaveRepoConfig writes the repository configuration file
func SaveRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(ConfigPath(repoRoot), configJSON, 0600)
}

// Load returns the effective configuration for a repository
func Load(repoRoot string) (Config, error) {
	config := Default()

	file, err := GetRepoConfig(repoRoot)
	if err != nil {
		return config, err
	}
	if file.Remote != nil && *file.Remote != "" {
		config.Remote = *file.Remote
	}
	if file.KeepPatches != nil {
		config.KeepPatches = *file.KeepPatches
	}
	if file.SplitSubjectFallback != nil && *file.SplitSubjectFallback != "" {
		config.SplitSubjectFallback = *file.SplitSubjectFallback
	}

	if remote := os.Getenv(envRemote); remote != "" {
		config.Remote = remote
	}
	if raw := os.Getenv(envKeepPatches); raw != "" {
		keep, err := strconv.ParseBool(raw)
		if err != nil {
			return config, fmt.Errorf("invalid %s value %q: %w", envKeepPatches, raw, err)
		}
		config.KeepPatches = keep
	}

	return config, nil
}
