package patch

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carveerrors "carve.dev/carve/internal/errors"
)

func hunkText(header string, body ...string) string {
	return header + "\n" + strings.Join(body, "\n") + "\n"
}

func TestSplitHunk(t *testing.T) {
	t.Run("splits before a new-file line and rebases the second header", func(t *testing.T) {
		text := hunkText("@@ -1,4 +1,5 @@", " b1", "-b2old", "+b2new", " b3", "+b4", " b5")

		first, second, err := SplitHunk(text, AtLine(4, 0))
		require.NoError(t, err)
		require.Equal(t, "@@ -1,3 +1,3 @@\n b1\n-b2old\n+b2new\n b3\n", first)
		require.Equal(t, "@@ -4,1 +4,2 @@\n+b4\n b5\n", second)
	})

	t.Run("second half of a pure addition has a zero old count", func(t *testing.T) {
		text := hunkText("@@ -1,3 +1,3 @@", " b1", "-b2old", "+b2new", " b3", "+b4")

		first, second, err := SplitHunk(text, AtLine(4, 0))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(first, "@@ -1,3 +1,3 @@\n"))
		require.Equal(t, "@@ -4,0 +4,1 @@\n+b4\n", second)
	})

	t.Run("ignores the counts written in the header", func(t *testing.T) {
		text := hunkText("@@ -10,99 +12,1 @@", " a", "+b", " c")

		first, second, err := SplitHunk(text, AtIndex(2))
		require.NoError(t, err)
		require.Equal(t, "@@ -10,1 +12,2 @@\n a\n+b\n", first)
		require.Equal(t, "@@ -11,1 +14,1 @@\n c\n", second)
	})

	t.Run("removal lines belong to the following new-file line", func(t *testing.T) {
		text := hunkText("@@ -1,3 +1,3 @@", " a", "-b", "+B", " c")

		first, second, err := SplitHunk(text, AtLine(2, 1))
		require.NoError(t, err)
		require.Equal(t, "@@ -1,1 +1,1 @@\n a\n", first)
		require.Equal(t, "@@ -2,2 +2,2 @@\n-b\n+B\n c\n", second)
	})

	t.Run("rejects index zero and body length", func(t *testing.T) {
		text := hunkText("@@ -1,2 +1,3 @@", " a", "+b", " c")

		for _, idx := range []int{0, 3, -1, 10} {
			_, _, err := SplitHunk(text, AtIndex(idx))
			require.Error(t, err)
			require.True(t, errors.Is(err, carveerrors.ErrSplitOutOfRange), "index %d", idx)
		}
	})

	t.Run("rejects a line before or past the hunk", func(t *testing.T) {
		text := hunkText("@@ -5,2 +5,3 @@", " a", "+b", " c")

		_, _, err := SplitHunk(text, AtLine(5, 0))
		require.ErrorIs(t, err, carveerrors.ErrSplitOutOfRange)

		_, _, err = SplitHunk(text, AtLine(40, 0))
		require.ErrorIs(t, err, carveerrors.ErrSplitOutOfRange)
	})

	t.Run("rejects an invalid header", func(t *testing.T) {
		_, _, err := SplitHunk("@@ nonsense @@\n a\n", AtIndex(1))
		require.ErrorIs(t, err, carveerrors.ErrParseFailure)

		var parseErr *carveerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, "@@ nonsense @@", parseErr.Input)
	})

	t.Run("preserves line contents and counts", func(t *testing.T) {
		body := []string{" one", "-two", "+TWO", "+extra", " three", "-four", "\\ No newline at end of file", "+FOUR", " five"}
		text := hunkText("@@ -7,5 +7,6 @@", body...)
		orig, err := ParseHunk(text)
		require.NoError(t, err)

		for idx := 1; idx < len(body); idx++ {
			first, second, err := SplitParsed(text, AtIndex(idx))
			require.NoError(t, err)

			assert.Equal(t, orig.OldCount, first.OldCount+second.OldCount, "index %d", idx)
			assert.Equal(t, orig.NewCount, first.NewCount+second.NewCount, "index %d", idx)
			assert.Equal(t, orig.Body, append(append([]string{}, first.Body...), second.Body...), "index %d", idx)
			assert.Equal(t, orig.OldStart+first.OldCount, second.OldStart)
			assert.Equal(t, orig.NewStart+first.NewCount, second.NewStart)
		}
	})
}

func TestSplitHunkInsideLine(t *testing.T) {
	t.Run("splits an added line into two lines with the same prefix", func(t *testing.T) {
		text := hunkText("@@ -1,1 +1,2 @@", " a", "+foo")

		first, second, err := SplitParsed(text, AtLine(2, 2))
		require.NoError(t, err)
		require.Equal(t, []string{" a", "+f"}, first.Body)
		require.Equal(t, []string{"+oo"}, second.Body)
		require.Equal(t, "foo", strings.TrimPrefix(first.Body[1], "+")+strings.TrimPrefix(second.Body[0], "+"))
		require.Equal(t, 3, second.NewStart)
	})

	t.Run("splits a context line", func(t *testing.T) {
		text := hunkText("@@ -1,2 +1,3 @@", " hello", "+x", " world")

		first, second, err := SplitParsed(text, AtLine(1, 3))
		require.NoError(t, err)
		require.Equal(t, []string{" he"}, first.Body)
		require.Equal(t, []string{" llo", "+x", " world"}, second.Body)
	})

	t.Run("counts columns in characters", func(t *testing.T) {
		text := hunkText("@@ -0,0 +1,1 @@", "+héllo")

		first, second, err := SplitParsed(text, AtLine(1, 3))
		require.NoError(t, err)
		require.Equal(t, "+hé", first.Body[0])
		require.Equal(t, "+llo", second.Body[0])
	})

	t.Run("allows a column one past the end", func(t *testing.T) {
		text := hunkText("@@ -0,0 +1,1 @@", "+abc")

		first, second, err := SplitParsed(text, AtLine(1, 4))
		require.NoError(t, err)
		require.Equal(t, []string{"+abc"}, first.Body)
		require.Equal(t, []string{"+"}, second.Body)
	})

	t.Run("rejects a column beyond the end", func(t *testing.T) {
		text := hunkText("@@ -0,0 +1,1 @@", "+abc")

		_, _, err := SplitParsed(text, AtLine(1, 6))
		require.ErrorIs(t, err, carveerrors.ErrSplitOutOfRange)
	})

	t.Run("rejects an empty line", func(t *testing.T) {
		text := hunkText("@@ -0,0 +1,2 @@", "+", "+abc")

		_, _, err := SplitParsed(text, AtLine(1, 2))
		require.ErrorIs(t, err, carveerrors.ErrSplitOutOfRange)
	})

	t.Run("skips removed lines when looking for the target", func(t *testing.T) {
		text := hunkText("@@ -1,2 +1,1 @@", "-gone", " kept")

		first, second, err := SplitParsed(text, AtLine(1, 3))
		require.NoError(t, err)
		require.Equal(t, []string{"-gone", " ke"}, first.Body)
		require.Equal(t, []string{" pt"}, second.Body)
	})
}
