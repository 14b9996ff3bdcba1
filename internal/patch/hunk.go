package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	carveerrors "carve.dev/carve/internal/errors"
)

// hunkHeaderRegex matches hunk headers: @@ -old_start[,old_count] +new_start[,new_count] @@
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Hunk is one parsed hunk. Counts are derived from Body, never from the header.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Body     []string
}

// ParseHunk parses hunk text (header line plus body lines). Only the start
// positions are read from the header; counts are recomputed from the body.
func ParseHunk(text string) (*Hunk, error) {
	header, rest, _ := strings.Cut(text, "\n")
	match := hunkHeaderRegex.FindStringSubmatch(header)
	if match == nil {
		return nil, carveerrors.NewParseError(header, "invalid hunk header")
	}

	oldStart, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, carveerrors.NewParseError(header, "invalid old start")
	}
	newStart, err := strconv.Atoi(match[3])
	if err != nil {
		return nil, carveerrors.NewParseError(header, "invalid new start")
	}

	h := &Hunk{
		OldStart: oldStart,
		NewStart: newStart,
		Body:     splitBody(rest),
	}
	h.Recount()
	return h, nil
}

// splitBody splits the text after a hunk header into body lines. The empty
// element produced by a terminating newline is not a body line.
func splitBody(rest string) []string {
	if rest == "" {
		return []string{}
	}
	lines := strings.Split(rest, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Recount recomputes OldCount and NewCount from the body.
func (h *Hunk) Recount() {
	h.OldCount, h.NewCount = countLines(h.Body)
}

// String renders the hunk with BuildHunk.
func (h *Hunk) String() string {
	return BuildHunk(*h)
}

// HasChanges reports whether the body carries at least one added or removed line.
func (h *Hunk) HasChanges() bool {
	for _, line := range h.Body {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			return true
		}
	}
	return false
}

// lineContribution returns how many old-file and new-file lines a body line stands for.
//
//	' '  context        1 old, 1 new
//	'-'  removal        1 old
//	'+'  addition       1 new
//	'\'  no-newline     nothing
//
// Empty lines and unknown prefixes count as context.
func lineContribution(line string) (old, new int) {
	if line == "" {
		return 1, 1
	}
	switch line[0] {
	case ' ':
		return 1, 1
	case '-':
		return 1, 0
	case '+':
		return 0, 1
	case '\\':
		return 0, 0
	default:
		return 1, 1
	}
}

func countLines(body []string) (old, new int) {
	for _, line := range body {
		o, n := lineContribution(line)
		old += o
		new += n
	}
	return old, new
}

func formatHeader(oldStart, oldCount, newStart, newCount int) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}
