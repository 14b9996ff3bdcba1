package patch

import (
	"regexp"
	"strings"
)

var (
	indexLineRegex   = regexp.MustCompile(`(?m)^index [0-9a-f]+\.\.[0-9a-f]+.*\n?`)
	newFileModeRegex = regexp.MustCompile(`(?m)^new file mode \d+\n?`)
	devNullOldRegex  = regexp.MustCompile(`(?m)^--- /dev/null$`)
)

// AssemblePiece builds the patch for piece index of a split commit.
//
// pieces maps a file path to that file's hunk pieces. A file present in pieces
// contributes its index-th piece, or nothing when it has fewer pieces. A file
// absent from pieces contributes all of its original hunks to piece 0 and
// nothing afterwards. Pieces without an added or removed line are skipped.
// An empty string means no file contributed to this piece.
//
// Pieces are applied one after another on top of each other, so every piece
// of a split file has its old-side start rewritten to the new-side position:
// by then all earlier pieces of the same file have been applied.
func AssemblePiece(files []FileDiff, pieces map[string][]string, index int) (string, error) {
	var b strings.Builder
	for _, file := range files {
		var hunkText string
		filePieces, split := pieces[file.Path]
		switch {
		case split:
			if index >= len(filePieces) {
				continue
			}
			rebased, err := rebaseForSequentialApply(filePieces[index])
			if err != nil {
				return "", err
			}
			hunkText = rebased
		case index == 0:
			hunkText = strings.Join(file.Hunks, "")
		default:
			continue
		}

		if !textHasChanges(hunkText) {
			continue
		}

		header := stripIndexLine(file.Header)
		if split && index > 0 {
			header = continuationHeader(header, file.Path)
		}
		b.WriteString(ensureTrailingNewline(header))
		b.WriteString(ensureTrailingNewline(hunkText))
	}
	return b.String(), nil
}

// rebaseForSequentialApply sets OldStart from NewStart. A hunk with no old
// lines points at the line before the insertion, as git diff writes it.
func rebaseForSequentialApply(hunkText string) (string, error) {
	h, err := ParseHunk(hunkText)
	if err != nil {
		return "", err
	}
	if h.OldCount == 0 {
		h.OldStart = h.NewStart - 1
		if h.OldStart < 0 {
			h.OldStart = 0
		}
	} else {
		h.OldStart = h.NewStart
	}
	return BuildHunk(*h), nil
}

// continuationHeader turns the header of a file created by the commit into a
// header that modifies the file piece 0 already created.
func continuationHeader(header, path string) string {
	if !devNullOldRegex.MatchString(header) {
		return header
	}
	header = newFileModeRegex.ReplaceAllString(header, "")
	return devNullOldRegex.ReplaceAllLiteralString(header, "--- a/"+path)
}

// stripIndexLine drops the "index <hash>..<hash>" line. The blob hashes no
// longer describe the content of a partial piece.
func stripIndexLine(header string) string {
	return indexLineRegex.ReplaceAllString(header, "")
}

// textHasChanges reports whether any line of hunk text adds or removes content.
func textHasChanges(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "@@") {
			continue
		}
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			return true
		}
	}
	return false
}
