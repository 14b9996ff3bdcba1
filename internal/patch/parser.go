package patch

import (
	"regexp"
	"strings"
)

var (
	// sectionStartRegex marks the first line of each per-file section
	sectionStartRegex = regexp.MustCompile(`(?m)^diff --git `)

	// filePathRegex extracts both paths from the "a/<path> b/<path>" part of a section
	filePathRegex = regexp.MustCompile(`a/(\S+)\s+b/(\S+)`)

	// hunkStartRegex marks the header line of each hunk inside a section
	hunkStartRegex = regexp.MustCompile(`(?m)^@@`)
)

// FileDiff is one file's slice of a multi-file patch.
type FileDiff struct {
	// Path is the b/ side of the "diff --git" header
	Path string
	// Header is the section text before its first hunk (diff --git, index, ---, +++ lines)
	Header string
	// Section is the full section text, header and hunks
	Section string
	// Hunks holds the raw text of each hunk in order, each ending in a newline
	Hunks []string
}

// ParseResult is the output of Parse. Sections counts every non-empty section
// found in the input, so callers can detect sections that were dropped.
type ParseResult struct {
	Files    []FileDiff
	Sections int
}

// Dropped returns the number of sections that had no recoverable path or no hunks.
func (r ParseResult) Dropped() int {
	return r.Sections - len(r.Files)
}

// Parse splits combined diff text into per-file sections and each section into
// hunks. A section that has no "a/... b/..." path or no hunk is omitted from
// Files: binary diffs, pure renames and mode-only changes fall out here.
// Parse never fails; an input with no sections yields an empty result.
func Parse(text string) ParseResult {
	var result ParseResult
	for _, section := range splitSections(text) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		result.Sections++

		file, ok := parseSection(section)
		if !ok {
			continue
		}
		result.Files = append(result.Files, file)
	}
	return result
}

// splitSections cuts text at every line that starts with "diff --git". Text
// before the first such line is returned as its own section.
func splitSections(text string) []string {
	starts := sectionStartRegex.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return []string{text}
	}

	sections := make([]string, 0, len(starts)+1)
	if starts[0][0] > 0 {
		sections = append(sections, text[:starts[0][0]])
	}
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		sections = append(sections, text[loc[0]:end])
	}
	return sections
}

func parseSection(section string) (FileDiff, bool) {
	match := filePathRegex.FindStringSubmatch(section)
	if match == nil {
		return FileDiff{}, false
	}

	hunkStarts := hunkStartRegex.FindAllStringIndex(section, -1)
	if len(hunkStarts) == 0 {
		return FileDiff{}, false
	}

	hunks := make([]string, 0, len(hunkStarts))
	for i, loc := range hunkStarts {
		end := len(section)
		if i+1 < len(hunkStarts) {
			end = hunkStarts[i+1][0]
		}
		hunks = append(hunks, ensureTrailingNewline(section[loc[0]:end]))
	}

	return FileDiff{
		Path:    match[2],
		Header:  section[:hunkStarts[0][0]],
		Section: section,
		Hunks:   hunks,
	}, true
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
