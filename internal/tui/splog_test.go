package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Run("prefixes warnings, errors and tips", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithConfig(&buf, "")
		require.NoError(t, err)

		splog.Info("plain %d", 1)
		splog.Warn("careful")
		splog.Error("broken %s", "thing")
		splog.Tip("try this")

		require.Equal(t, "plain 1\n⚠️  careful\n❌ broken thing\n💡 try this\n", buf.String())
	})

	t.Run("debug output follows SetDebug", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithConfig(&buf, "")
		require.NoError(t, err)

		splog.SetDebug(false)
		splog.Debug("hidden")
		require.Empty(t, buf.String())

		splog.SetDebug(true)
		splog.Debug("shown")
		require.Equal(t, "shown\n", buf.String())
	})

	t.Run("quiet suppresses console output", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithConfig(&buf, "")
		require.NoError(t, err)

		splog.SetQuiet(true)
		require.True(t, splog.IsQuiet())
		splog.Info("nothing")
		splog.Page("nothing")
		splog.Newline()
		require.Empty(t, buf.String())
	})

	t.Run("writes every level to the log file", func(t *testing.T) {
		var buf bytes.Buffer
		logFile := filepath.Join(t.TempDir(), "logs", "carve.log")
		splog, err := NewSplogWithConfig(&buf, logFile)
		require.NoError(t, err)
		splog.SetDebug(false)

		splog.Debug("only in the file")
		splog.Info("everywhere")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "only in the file")
		require.Contains(t, string(data), "everywhere")
		require.NotContains(t, buf.String(), "only in the file")
	})
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("honors CARVE_LOG_FILE", func(t *testing.T) {
		t.Setenv("CARVE_LOG_FILE", "/tmp/custom.log")
		require.Equal(t, "/tmp/custom.log", GetLogFilePath())
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		t.Setenv("CARVE_LOG_FILE", "")
		t.Setenv("HOME", "/home/someone")
		require.Equal(t, filepath.Join("/home/someone", ".carve", "logs", "carve.log"), GetLogFilePath())
	})
}

func TestRenderDiff(t *testing.T) {
	t.Run("returns text unchanged without color", func(t *testing.T) {
		ConfigureColor(true)
		require.False(t, ColorEnabled())

		text := "diff --git a/f b/f\n@@ -1 +1 @@\n-a\n+b\n"
		require.Equal(t, text, RenderDiff(text))
		require.Equal(t, "abc1234", ColorHash("abc1234def"))
	})
}
