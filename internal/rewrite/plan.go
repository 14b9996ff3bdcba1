package rewrite

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/patch"
)

// SplitPoint says where to cut a commit: before Line of Path in the new
// version of the file, or inside that line before Column when Column > 1.
// Column 0 means 1. Length is accepted and ignored.
type SplitPoint struct {
	Path   string
	Line   int
	Column int
	Length int
}

func (p SplitPoint) String() string {
	if p.Column > 1 {
		return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d", p.Path, p.Line)
}

// ParseSplitPoint reads "path:line[:column[:length]]". The path itself may
// contain colons; up to three trailing numeric fields are taken as
// line, column and length.
func ParseSplitPoint(s string) (SplitPoint, error) {
	parts := strings.Split(s, ":")

	var nums []int
	for len(parts) > 1 && len(nums) < 3 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}

	path := strings.Join(parts, ":")
	if path == "" || len(nums) == 0 {
		return SplitPoint{}, fmt.Errorf("invalid split point %q: expected path:line[:column[:length]]", s)
	}

	point := SplitPoint{Path: path, Line: nums[0]}
	if len(nums) > 1 {
		point.Column = nums[1]
	}
	if len(nums) > 2 {
		point.Length = nums[2]
	}
	if point.Line < 1 || point.Column < 0 || point.Length < 0 {
		return SplitPoint{}, fmt.Errorf("invalid split point %q: line must be positive and column and length not negative", s)
	}
	return point, nil
}

// SplitPlan holds the hunk pieces of every file that has split points
type SplitPlan struct {
	Files  []patch.FileDiff
	Pieces map[string][]string
	Count  int
}

// Piece assembles the patch for piece i. An empty string means no file
// contributes a change to that piece.
func (p *SplitPlan) Piece(i int) (string, error) {
	return patch.AssemblePiece(p.Files, p.Pieces, i)
}

// planSplit cuts the single hunk of every file named by points into pieces.
//
// Points of one file are applied in (Line, Column) order, each one cutting
// the last piece produced so far. A cut inside a line turns that line into
// two, so every later point of the same file moves down one line, and a later
// point on the same original line has its column taken relative to the right
// half left by the previous cut.
func planSplit(files []patch.FileDiff, points []SplitPoint) (*SplitPlan, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("at least one split point is required")
	}

	byPath := make(map[string]*patch.FileDiff, len(files))
	for i := range files {
		byPath[files[i].Path] = &files[i]
	}

	grouped := make(map[string][]SplitPoint)
	var order []string
	for _, p := range points {
		if _, ok := byPath[p.Path]; !ok {
			return nil, carveerrors.NewStructuralLimitationError(p.Path, "the commit does not change this file")
		}
		if _, seen := grouped[p.Path]; !seen {
			order = append(order, p.Path)
		}
		grouped[p.Path] = append(grouped[p.Path], p)
	}

	plan := &SplitPlan{Files: files, Pieces: make(map[string][]string, len(grouped)), Count: 1}
	for _, path := range order {
		file := byPath[path]
		if isDeletion(file.Header) {
			return nil, carveerrors.NewStructuralLimitationError(path, "files deleted by the commit cannot be split")
		}
		if len(file.Hunks) != 1 {
			return nil, carveerrors.NewStructuralLimitationError(path,
				fmt.Sprintf("only files changed by a single hunk can be split, this one has %d", len(file.Hunks)))
		}

		pieces, err := cutPieces(file.Hunks[0], grouped[path])
		if err != nil {
			return nil, fmt.Errorf("failed to split %s: %w", path, err)
		}
		plan.Pieces[path] = pieces
		if len(pieces) > plan.Count {
			plan.Count = len(pieces)
		}
	}
	return plan, nil
}

// isDeletion reports whether a section header removes its file
func isDeletion(header string) bool {
	return strings.Contains(header, "\ndeleted file mode ") || strings.Contains(header, "\n+++ /dev/null")
}

// cutPieces splits hunk at every point, returning the pieces in order
func cutPieces(hunk string, points []SplitPoint) ([]string, error) {
	sorted := normalizePoints(points)

	pieces := []string{hunk}
	shift := 0
	lastLine, colOffset := 0, 0
	for _, p := range sorted {
		if p.Line != lastLine {
			colOffset = 0
		}
		target := patch.AtLine(p.Line+shift, p.Column)
		if p.Column > 1 {
			target.Column = p.Column - colOffset
		}

		last := pieces[len(pieces)-1]
		first, second, err := patch.SplitHunk(last, target)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", p, err)
		}
		pieces = append(pieces[:len(pieces)-1], first, second)

		if p.Column > 1 {
			shift++
			colOffset = p.Column - 1
		}
		lastLine = p.Line
	}
	return pieces, nil
}

// normalizePoints sorts points by (Line, Column), treats column 0 as 1 and
// drops duplicates
func normalizePoints(points []SplitPoint) []SplitPoint {
	sorted := make([]SplitPoint, 0, len(points))
	for _, p := range points {
		if p.Column < 1 {
			p.Column = 1
		}
		p.Length = 0
		sorted = append(sorted, p)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Column < sorted[j].Column
	})

	deduped := make([]SplitPoint, 0, len(sorted))
	for _, p := range sorted {
		if len(deduped) > 0 && p == deduped[len(deduped)-1] {
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}
