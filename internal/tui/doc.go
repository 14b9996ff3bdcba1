// Package tui provides the terminal user interface for carve.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Interactive prompts and selections (using bubbletea and survey)
//   - Terminal styling and colors (using lipgloss and termenv)
//   - Step progress for rewrites and highlighted patch previews
package tui
