package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderDiff returns patch text highlighted for the terminal, or the text
// unchanged when color is disabled or highlighting fails
func RenderDiff(patchText string) string {
	if !ColorEnabled() || patchText == "" {
		return patchText
	}

	var b strings.Builder
	if err := quick.Highlight(&b, patchText, "diff", "terminal256", "monokai"); err != nil {
		return patchText
	}
	return b.String()
}
