package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func sendStep(t *testing.T, m StepTUIModel, update ProgressUpdate) StepTUIModel {
	t.Helper()
	next, _ := m.Update(stepUpdateMsg(update))
	model, ok := next.(StepTUIModel)
	require.True(t, ok)
	return model
}

func TestStepTUIModel(t *testing.T) {
	t.Run("adds steps as they start and marks them done", func(t *testing.T) {
		m := NewStepTUIModel("Splitting", nil)
		m = sendStep(t, m, ProgressUpdate{Type: "started", Recipe: "split", Step: "reset to parent"})
		m = sendStep(t, m, ProgressUpdate{Type: "completed", Recipe: "split", Step: "reset to parent"})
		m = sendStep(t, m, ProgressUpdate{Type: "started", Recipe: "split", Step: "commit piece 1/2"})

		steps := m.Steps()
		require.Len(t, steps, 2)
		require.Equal(t, stepStatusDone, steps[0].Status)
		require.Equal(t, stepStatusRunning, steps[1].Status)

		view := m.View()
		require.Contains(t, view, "Splitting")
		require.Contains(t, view, "reset to parent")
		require.Contains(t, view, "commit piece 1/2...")
	})

	t.Run("keeps the same step name apart across recipes", func(t *testing.T) {
		m := NewStepTUIModel("Moving", nil)
		m = sendStep(t, m, ProgressUpdate{Type: "started", Recipe: "move", Step: "resolve commit"})
		m = sendStep(t, m, ProgressUpdate{Type: "started", Recipe: "remove", Step: "resolve commit"})

		require.Len(t, m.Steps(), 2)
	})

	t.Run("shows the error of a failed step", func(t *testing.T) {
		m := NewStepTUIModel("Splitting", nil)
		m = sendStep(t, m, ProgressUpdate{Type: "started", Recipe: "split", Step: "apply"})
		m = sendStep(t, m, ProgressUpdate{Type: "failed", Recipe: "split", Step: "apply", Error: errors.New("patch does not apply")})

		next, cmd := m.Update(stepsClosedMsg{})
		require.NotNil(t, cmd)
		m = next.(StepTUIModel)

		view := m.View()
		require.Contains(t, view, "patch does not apply")
		require.Contains(t, view, "Stopped on a failed step")
	})

	t.Run("reads updates from the channel until it closes", func(t *testing.T) {
		reporter := NewChannelProgressReporter()
		reporter.StepStarted("split", "reset to parent")
		reporter.Close()

		m := NewStepTUIModel("Splitting", reporter.Updates())
		cmd := waitForStepUpdate(reporter.Updates())
		require.Equal(t, stepUpdateMsg{Type: "started", Recipe: "split", Step: "reset to parent"}, cmd())
		require.Equal(t, stepsClosedMsg{}, cmd())

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.Empty(t, next.View())
	})
}
