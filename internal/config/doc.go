// Package config manages carve configuration.
//
// It handles:
//   - The repository configuration file (.git/.carve_config)
//   - Environment overrides (CARVE_REMOTE, CARVE_KEEP_PATCHES)
package config
