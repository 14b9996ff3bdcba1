package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	colorDisabled bool
)

// ConfigureColor picks the color profile for all styled output. Color is off
// when noColor is set, when NO_COLOR is set, or when stdout is not a terminal.
func ConfigureColor(noColor bool) {
	colorDisabled = noColor || os.Getenv("NO_COLOR") != "" || !IsTTY()
	if colorDisabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// ColorEnabled reports whether styled output renders with color
func ColorEnabled() bool {
	return !colorDisabled
}

// ColorHash styles a commit hash, shortened to seven characters
func ColorHash(hash string) string {
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hashStyle.Render(hash)
}

// ColorBranch styles a branch name
func ColorBranch(name string) string {
	return branchStyle.Render(name)
}

// ColorDim styles secondary text
func ColorDim(text string) string {
	return stepStyle.Render(text)
}

// ColorGreen styles text that reports success
func ColorGreen(text string) string {
	return successStyle.Render(text)
}

// ColorRed styles text that reports failure
func ColorRed(text string) string {
	return failureStyle.Render(text)
}
