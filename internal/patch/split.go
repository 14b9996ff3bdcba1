package patch

import (
	carveerrors "carve.dev/carve/internal/errors"
)

// SplitTarget says where to cut a hunk.
//
// With ByIndex set, Index is a raw position in the hunk body. Otherwise Line
// is a 1-based line in the new file; a Column greater than 1 cuts inside that
// line, before the Column-th character.
type SplitTarget struct {
	Line    int
	Column  int
	Index   int
	ByIndex bool
}

// AtLine returns a target that cuts before the given new-file line, or inside
// it when column is greater than 1.
func AtLine(line, column int) SplitTarget {
	return SplitTarget{Line: line, Column: column}
}

// AtIndex returns a target that cuts before body line i.
func AtIndex(i int) SplitTarget {
	return SplitTarget{Index: i, ByIndex: true}
}

// SplitHunk cuts one hunk into two well-formed hunks. The first half keeps the
// original start positions; the second half starts where the first half's
// old and new line counts leave off. Both halves are non-empty.
func SplitHunk(text string, target SplitTarget) (string, string, error) {
	first, second, err := SplitParsed(text, target)
	if err != nil {
		return "", "", err
	}
	return BuildHunk(*first), BuildHunk(*second), nil
}

// SplitParsed is SplitHunk without the final rendering step.
func SplitParsed(text string, target SplitTarget) (*Hunk, *Hunk, error) {
	h, err := ParseHunk(text)
	if err != nil {
		return nil, nil, err
	}

	body := h.Body
	var index int
	switch {
	case target.ByIndex:
		index = target.Index
	case target.Column <= 1:
		index = lineIndex(h, target.Line)
	default:
		body, index, err = splitInsideLine(h, target.Line, target.Column)
		if err != nil {
			return nil, nil, err
		}
	}

	if index <= 0 || index >= len(body) {
		return nil, nil, &carveerrors.SplitOutOfRangeError{
			Index:  index,
			Length: len(body),
			Line:   target.Line,
			Column: target.Column,
		}
	}

	first := &Hunk{
		OldStart: h.OldStart,
		NewStart: h.NewStart,
		Body:     append([]string(nil), body[:index]...),
	}
	first.Recount()

	second := &Hunk{
		OldStart: h.OldStart + first.OldCount,
		NewStart: h.NewStart + first.NewCount,
		Body:     append([]string(nil), body[index:]...),
	}
	second.Recount()

	return first, second, nil
}

// lineIndex returns the first body index whose new-file position is at least
// line. A removal sits at the position of the next new-file line. When no body
// line reaches line, the body length is returned.
func lineIndex(h *Hunk, line int) int {
	pos := h.NewStart
	for i, l := range h.Body {
		if pos >= line {
			return i
		}
		_, n := lineContribution(l)
		pos += n
	}
	return len(h.Body)
}

// splitInsideLine replaces the context or added line at new-file position line
// with two lines that carry the same prefix, cut before the column-th rune.
// It returns the new body and the index of the second piece.
func splitInsideLine(h *Hunk, line, column int) ([]string, int, error) {
	pos := h.NewStart
	for i, l := range h.Body {
		_, n := lineContribution(l)
		if n == 0 {
			continue
		}
		if pos == line && l != "" && (l[0] == ' ' || l[0] == '+') {
			prefix, content := l[:1], []rune(l[1:])
			if len(content) == 0 {
				return nil, 0, &carveerrors.SplitOutOfRangeError{
					Line: line, Column: column, Reason: "line is empty",
				}
			}
			if column-1 > len(content) {
				return nil, 0, &carveerrors.SplitOutOfRangeError{
					Line: line, Column: column, Reason: "column is past the end of the line",
				}
			}

			body := make([]string, 0, len(h.Body)+1)
			body = append(body, h.Body[:i]...)
			body = append(body,
				prefix+string(content[:column-1]),
				prefix+string(content[column-1:]),
			)
			body = append(body, h.Body[i+1:]...)
			return body, i + 1, nil
		}
		pos += n
	}

	return nil, 0, &carveerrors.SplitOutOfRangeError{
		Line: line, Column: column, Reason: "no context or added line at that position",
	}
}
