package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If CARVE_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.carve/logs/carve.log
func GetLogFilePath() string {
	if customPath := os.Getenv("CARVE_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "carve.log"
	}

	return filepath.Join(homeDir, ".carve", "logs", "carve.log")
}
