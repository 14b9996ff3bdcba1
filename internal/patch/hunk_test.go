package patch

import (
	"testing"

	"github.com/stretchr/testify/require"

	carveerrors "carve.dev/carve/internal/errors"
)

func TestParseHunk(t *testing.T) {
	t.Run("recomputes counts from the body", func(t *testing.T) {
		h, err := ParseHunk("@@ -3 +3,40 @@ func main() {\n ctx\n-old\n+new\n+more\n\\ No newline at end of file\n")
		require.NoError(t, err)
		require.Equal(t, 3, h.OldStart)
		require.Equal(t, 3, h.NewStart)
		require.Equal(t, 2, h.OldCount)
		require.Equal(t, 3, h.NewCount)
		require.Len(t, h.Body, 5)
	})

	t.Run("treats empty and unknown lines as context", func(t *testing.T) {
		h, err := ParseHunk("@@ -1,0 +1,0 @@\n\n?odd\n+x\n")
		require.NoError(t, err)
		require.Equal(t, 2, h.OldCount)
		require.Equal(t, 3, h.NewCount)
	})

	t.Run("keeps an unterminated last line", func(t *testing.T) {
		h, err := ParseHunk("@@ -1,1 +1,1 @@\n-a\n+b")
		require.NoError(t, err)
		require.Equal(t, []string{"-a", "+b"}, h.Body)
	})

	t.Run("fails on text without a header", func(t *testing.T) {
		_, err := ParseHunk(" context only\n")
		require.ErrorIs(t, err, carveerrors.ErrParseFailure)
	})

	t.Run("reports whether the body changes anything", func(t *testing.T) {
		h, err := ParseHunk("@@ -1,2 +1,2 @@\n a\n b\n")
		require.NoError(t, err)
		require.False(t, h.HasChanges())

		h, err = ParseHunk("@@ -1,1 +1,2 @@\n a\n+b\n")
		require.NoError(t, err)
		require.True(t, h.HasChanges())
	})
}

func TestBuildHunk(t *testing.T) {
	t.Run("an empty body is the header and a newline", func(t *testing.T) {
		require.Equal(t, "@@ -4,0 +4,0 @@\n", BuildHunk(Hunk{OldStart: 4, NewStart: 4, Body: nil}))
	})

	t.Run("renders empty body lines as a single space", func(t *testing.T) {
		out := BuildHunk(Hunk{OldStart: 1, OldCount: 2, NewStart: 1, NewCount: 2, Body: []string{" a", ""}})
		require.Equal(t, "@@ -1,2 +1,2 @@\n a\n \n", out)
	})

	t.Run("build then parse then build is stable", func(t *testing.T) {
		h := Hunk{OldStart: 2, NewStart: 2, Body: []string{"", "-x", "+y", "", "\\ No newline at end of file"}}
		h.Recount()

		once := BuildHunk(h)
		parsed, err := ParseHunk(once)
		require.NoError(t, err)
		require.Equal(t, once, BuildHunk(*parsed))
		require.Equal(t, h.OldCount, parsed.OldCount)
		require.Equal(t, h.NewCount, parsed.NewCount)
	})
}
