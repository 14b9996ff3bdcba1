package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/patch"
)

func TestParseSplitPoint(t *testing.T) {
	t.Run("reads line, column and length", func(t *testing.T) {
		point, err := ParseSplitPoint("a.txt:3")
		require.NoError(t, err)
		require.Equal(t, SplitPoint{Path: "a.txt", Line: 3}, point)

		point, err = ParseSplitPoint("dir/b.go:10:4")
		require.NoError(t, err)
		require.Equal(t, SplitPoint{Path: "dir/b.go", Line: 10, Column: 4}, point)

		point, err = ParseSplitPoint("x.txt:1:2:5")
		require.NoError(t, err)
		require.Equal(t, SplitPoint{Path: "x.txt", Line: 1, Column: 2, Length: 5}, point)
	})

	t.Run("keeps colons inside the path", func(t *testing.T) {
		point, err := ParseSplitPoint("weird:name.txt:7")
		require.NoError(t, err)
		require.Equal(t, "weird:name.txt", point.Path)
		require.Equal(t, 7, point.Line)
	})

	t.Run("rejects malformed points", func(t *testing.T) {
		for _, input := range []string{"a.txt", ":3", "a.txt:0", "a.txt:x", ""} {
			_, err := ParseSplitPoint(input)
			require.Error(t, err, input)
		}
	})
}

func TestNormalizePoints(t *testing.T) {
	points := normalizePoints([]SplitPoint{
		{Path: "a", Line: 5, Column: 3},
		{Path: "a", Line: 2},
		{Path: "a", Line: 5, Column: 0},
		{Path: "a", Line: 2, Column: 1, Length: 4},
		{Path: "a", Line: 5, Column: 1},
	})

	require.Equal(t, []SplitPoint{
		{Path: "a", Line: 2, Column: 1},
		{Path: "a", Line: 5, Column: 1},
		{Path: "a", Line: 5, Column: 3},
	}, points)
}

func TestCutPieces(t *testing.T) {
	t.Run("cuts the last piece at every line", func(t *testing.T) {
		hunk := "@@ -1,1 +1,4 @@\n one\n+two\n+three\n+four\n"

		pieces, err := cutPieces(hunk, []SplitPoint{{Path: "f", Line: 4}, {Path: "f", Line: 2}})
		require.NoError(t, err)
		require.Equal(t, []string{
			"@@ -1,1 +1,1 @@\n one\n",
			"@@ -2,0 +2,2 @@\n+two\n+three\n",
			"@@ -2,0 +4,1 @@\n+four\n",
		}, pieces)
	})

	t.Run("measures later columns on the same line from the previous cut", func(t *testing.T) {
		hunk := "@@ -0,0 +1,1 @@\n+abcdef\n"

		pieces, err := cutPieces(hunk, []SplitPoint{{Path: "f", Line: 1, Column: 5}, {Path: "f", Line: 1, Column: 3}})
		require.NoError(t, err)
		require.Equal(t, []string{
			"@@ -0,0 +1,1 @@\n+ab\n",
			"@@ -0,0 +2,1 @@\n+cd\n",
			"@@ -0,0 +3,1 @@\n+ef\n",
		}, pieces)
	})

	t.Run("shifts later lines after a cut inside a line", func(t *testing.T) {
		hunk := "@@ -0,0 +1,3 @@\n+abc\n+def\n+ghi\n"

		pieces, err := cutPieces(hunk, []SplitPoint{{Path: "f", Line: 1, Column: 2}, {Path: "f", Line: 3}})
		require.NoError(t, err)
		require.Equal(t, []string{
			"@@ -0,0 +1,1 @@\n+a\n",
			"@@ -0,0 +2,2 @@\n+bc\n+def\n",
			"@@ -0,0 +4,1 @@\n+ghi\n",
		}, pieces)
	})

	t.Run("reports a point at the start of the hunk", func(t *testing.T) {
		_, err := cutPieces("@@ -1,1 +1,2 @@\n one\n+two\n", []SplitPoint{{Path: "f", Line: 1}})
		require.ErrorIs(t, err, carveerrors.ErrSplitOutOfRange)
	})
}

func TestPlanSplit(t *testing.T) {
	files := patch.Parse(`diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1,1 +1,4 @@
 one
+two
+three
+four
diff --git a/b.txt b/b.txt
--- a/b.txt
+++ b/b.txt
@@ -1,1 +1,2 @@
 x
+y
diff --git a/c.txt b/c.txt
--- a/c.txt
+++ b/c.txt
@@ -1,1 +1,1 @@
-old
+new
@@ -9,1 +9,1 @@
-old
+new
`).Files

	t.Run("counts the pieces of the most split file", func(t *testing.T) {
		plan, err := planSplit(files, []SplitPoint{
			{Path: "a.txt", Line: 2},
			{Path: "a.txt", Line: 4},
			{Path: "b.txt", Line: 2},
		})
		require.NoError(t, err)
		require.Equal(t, 3, plan.Count)
		require.Len(t, plan.Pieces["a.txt"], 3)
		require.Len(t, plan.Pieces["b.txt"], 2)
		require.NotContains(t, plan.Pieces, "c.txt")

		last, err := plan.Piece(2)
		require.NoError(t, err)
		require.Contains(t, last, "+four\n")
		require.NotContains(t, last, "b.txt")
	})

	t.Run("rejects files the commit does not change", func(t *testing.T) {
		_, err := planSplit(files, []SplitPoint{{Path: "missing.txt", Line: 2}})
		require.ErrorIs(t, err, carveerrors.ErrStructuralLimitation)
	})

	t.Run("rejects split points in files with several hunks", func(t *testing.T) {
		_, err := planSplit(files, []SplitPoint{{Path: "c.txt", Line: 9}})
		require.ErrorIs(t, err, carveerrors.ErrStructuralLimitation)
	})

	t.Run("rejects split points in files the commit deletes", func(t *testing.T) {
		deleted := patch.Parse(`diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index 5626abf..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,3 +0,0 @@
-one
-two
-three
`).Files
		require.Len(t, deleted, 1)

		_, err := planSplit(deleted, []SplitPoint{{Path: "gone.txt", Line: 2}})
		require.ErrorIs(t, err, carveerrors.ErrStructuralLimitation)
		require.Contains(t, err.Error(), "gone.txt")
	})

	t.Run("requires at least one point", func(t *testing.T) {
		_, err := planSplit(files, nil)
		require.Error(t, err)
	})
}
