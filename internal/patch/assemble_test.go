package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemblePiece(t *testing.T) {
	files := Parse(twoFilePatch).Files

	first, second, err := SplitHunk(files[0].Hunks[0], AtLine(3, 0))
	require.NoError(t, err)
	pieces := map[string][]string{"alpha.txt": {first, second}}

	t.Run("piece zero carries unsplit files whole", func(t *testing.T) {
		out, err := AssemblePiece(files, pieces, 0)
		require.NoError(t, err)
		require.Contains(t, out, "diff --git a/alpha.txt b/alpha.txt\n")
		require.Contains(t, out, "diff --git a/dir/beta.go b/dir/beta.go\n")
		require.Contains(t, out, "+two\n")
		require.NotContains(t, out, "index ")
		require.NoError(t, Verify(out))
	})

	t.Run("later pieces carry only split files", func(t *testing.T) {
		out, err := AssemblePiece(files, pieces, 1)
		require.NoError(t, err)
		require.Equal(t, "", out)
	})

	t.Run("past the last piece is empty", func(t *testing.T) {
		out, err := AssemblePiece(files, pieces, 5)
		require.NoError(t, err)
		require.Empty(t, out)
	})

	t.Run("rebases later pieces onto the new-file positions", func(t *testing.T) {
		text := "diff --git a/f b/f\nindex 1111111..2222222 100644\n--- a/f\n+++ b/f\n" +
			"@@ -1,3 +1,5 @@\n a\n+b\n c\n+d\n e\n"
		fs := Parse(text).Files
		h1, h2, err := SplitHunk(fs[0].Hunks[0], AtLine(3, 0))
		require.NoError(t, err)
		ps := map[string][]string{"f": {h1, h2}}

		p0, err := AssemblePiece(fs, ps, 0)
		require.NoError(t, err)
		require.Contains(t, p0, "@@ -1,1 +1,2 @@\n a\n+b\n")

		p1, err := AssemblePiece(fs, ps, 1)
		require.NoError(t, err)
		require.Contains(t, p1, "@@ -3,2 +3,3 @@\n c\n+d\n e\n")
		require.NoError(t, Verify(p1))
	})

	t.Run("later pieces of a new file modify it instead of creating it", func(t *testing.T) {
		text := "diff --git a/new.txt b/new.txt\nnew file mode 100644\nindex 0000000..3333333\n--- /dev/null\n+++ b/new.txt\n" +
			"@@ -0,0 +1,3 @@\n+x\n+y\n+z\n"
		fs := Parse(text).Files
		h1, h2, err := SplitHunk(fs[0].Hunks[0], AtLine(2, 0))
		require.NoError(t, err)
		ps := map[string][]string{"new.txt": {h1, h2}}

		p0, err := AssemblePiece(fs, ps, 0)
		require.NoError(t, err)
		require.Contains(t, p0, "new file mode 100644\n")
		require.Contains(t, p0, "--- /dev/null\n")
		require.Contains(t, p0, "@@ -0,0 +1,1 @@\n+x\n")

		p1, err := AssemblePiece(fs, ps, 1)
		require.NoError(t, err)
		require.NotContains(t, p1, "new file mode")
		require.Contains(t, p1, "--- a/new.txt\n+++ b/new.txt\n")
		require.Contains(t, p1, "@@ -1,0 +2,2 @@\n+y\n+z\n")
		require.NoError(t, Verify(p1))
	})

	t.Run("skips pieces with nothing to change", func(t *testing.T) {
		text := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,3 +1,4 @@\n a\n b\n+c\n d\n"
		fs := Parse(text).Files
		h1, h2, err := SplitHunk(fs[0].Hunks[0], AtLine(2, 0))
		require.NoError(t, err)
		ps := map[string][]string{"f": {h1, h2}}

		p0, err := AssemblePiece(fs, ps, 0)
		require.NoError(t, err)
		require.Empty(t, p0)

		p1, err := AssemblePiece(fs, ps, 1)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(p1, "diff --git a/f b/f\n"))
	})
}

func TestVerify(t *testing.T) {
	t.Run("accepts a well-formed patch", func(t *testing.T) {
		require.NoError(t, Verify(twoFilePatch))
	})

	t.Run("rejects text with no files", func(t *testing.T) {
		require.Error(t, Verify("just words\n"))
	})

	t.Run("rejects fragments whose counts disagree with their lines", func(t *testing.T) {
		bad := "diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -1,5 +1,5 @@\n-a\n+b\n"
		require.Error(t, Verify(bad))
	})

	t.Run("summarizes added and deleted lines", func(t *testing.T) {
		summaries, err := Summarize(twoFilePatch)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		require.Equal(t, Summary{Path: "alpha.txt", Added: 1}, summaries[0])
		require.Equal(t, Summary{Path: "dir/beta.go", Added: 1, Deleted: 1}, summaries[1])
	})
}
