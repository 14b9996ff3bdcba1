// Package coords converts between 1-based (line, column) positions and
// character offsets in text content. Lines are separated by "\n" and columns
// and offsets count characters, not bytes.
package coords

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned for a position or offset outside the content.
var ErrOutOfRange = errors.New("position out of range")

// Offset returns the character offset of (line, column). The column may be one
// past the last character of the line, which addresses the end of the line.
func Offset(content string, line, column int) (int, error) {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return 0, fmt.Errorf("line %d of %d: %w", line, len(lines), ErrOutOfRange)
	}

	width := runeLen(lines[line-1])
	if column < 1 || column > width+1 {
		return 0, fmt.Errorf("column %d of line %d (%d characters): %w", column, line, width, ErrOutOfRange)
	}

	offset := 0
	for _, l := range lines[:line-1] {
		offset += runeLen(l) + 1
	}
	return offset + column - 1, nil
}

// Position returns the (line, column) of a character offset. The offset may
// equal the content length, which addresses the end of the last line.
func Position(content string, offset int) (int, int, error) {
	total := runeLen(content)
	if offset < 0 || offset > total {
		return 0, 0, fmt.Errorf("offset %d of %d: %w", offset, total, ErrOutOfRange)
	}

	line, column := 1, 1
	i := 0
	for _, r := range content {
		if i == offset {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		i++
	}
	return line, column, nil
}

func runeLen(s string) int {
	return len([]rune(s))
}
