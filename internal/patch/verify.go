package patch

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	carveerrors "carve.dev/carve/internal/errors"
)

// Verify checks that patch text is a well-formed git patch before it is handed
// to git apply: every file must parse and every fragment's header counts must
// agree with its lines.
func Verify(patchText string) error {
	files, _, err := gitdiff.Parse(strings.NewReader(patchText))
	if err != nil {
		return carveerrors.NewParseError(firstLine(patchText), err.Error())
	}
	if len(files) == 0 {
		return carveerrors.NewParseError(firstLine(patchText), "patch contains no files")
	}

	for _, file := range files {
		if file.IsBinary {
			return carveerrors.NewParseError(file.NewName, "binary patches are not supported")
		}
		for _, frag := range file.TextFragments {
			if err := frag.Validate(); err != nil {
				return carveerrors.NewParseError(frag.Header(), fmt.Sprintf("%s: %v", fileName(file), err))
			}
		}
	}
	return nil
}

// Summary describes one file of a patch for previews.
type Summary struct {
	Path    string
	Added   int64
	Deleted int64
	IsNew   bool
}

// Summarize returns per-file added/deleted counts for patch text.
func Summarize(patchText string) ([]Summary, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(patchText))
	if err != nil {
		return nil, carveerrors.NewParseError(firstLine(patchText), err.Error())
	}

	summaries := make([]Summary, 0, len(files))
	for _, file := range files {
		s := Summary{Path: fileName(file), IsNew: file.IsNew}
		for _, frag := range file.TextFragments {
			s.Added += frag.LinesAdded
			s.Deleted += frag.LinesDeleted
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func fileName(file *gitdiff.File) string {
	if file.NewName != "" {
		return file.NewName
	}
	return file.OldName
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
