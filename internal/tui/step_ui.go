package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	stepStatusRunning = "running"
	stepStatusDone    = "done"
	stepStatusError   = "error"
)

// StepItem is one step of a rewrite as shown by the step view
type StepItem struct {
	Recipe string
	Name   string
	Status string
	Error  error
}

// StepTUIModel is the bubbletea model showing rewrite steps as they run.
// Steps are not known up front; each one appears when it starts.
type StepTUIModel struct {
	title    string
	steps    []StepItem
	spinner  spinner.Model
	updates  <-chan ProgressUpdate
	done     bool
	quitting bool
	styles   stepStyles
}

type stepStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// stepUpdateMsg carries one update from the progress channel
type stepUpdateMsg ProgressUpdate

// stepsClosedMsg is sent once the progress channel is closed
type stepsClosedMsg struct{}

// NewStepTUIModel creates a step view reading from updates
func NewStepTUIModel(title string, updates <-chan ProgressUpdate) StepTUIModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StepTUIModel{
		title:   title,
		spinner: s,
		updates: updates,
		styles: stepStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Init starts the spinner and the first channel read
func (m StepTUIModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForStepUpdate(m.updates))
}

func waitForStepUpdate(updates <-chan ProgressUpdate) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return stepsClosedMsg{}
		}
		return stepUpdateMsg(update)
	}
}

// Update handles message updates for the bubbletea model
func (m StepTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The rewrite keeps running; only the view goes away.
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepUpdateMsg:
		m.apply(ProgressUpdate(msg))
		return m, waitForStepUpdate(m.updates)

	case stepsClosedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *StepTUIModel) apply(update ProgressUpdate) {
	idx := -1
	for i := range m.steps {
		if m.steps[i].Recipe == update.Recipe && m.steps[i].Name == update.Step {
			idx = i
		}
	}
	if idx == -1 {
		m.steps = append(m.steps, StepItem{Recipe: update.Recipe, Name: update.Step})
		idx = len(m.steps) - 1
	}

	switch update.Type {
	case "started":
		m.steps[idx].Status = stepStatusRunning
	case "completed":
		m.steps[idx].Status = stepStatusDone
	case "failed":
		m.steps[idx].Status = stepStatusError
		m.steps[idx].Error = update.Error
	}
}

// Steps returns the steps seen so far
func (m StepTUIModel) Steps() []StepItem {
	return m.steps
}

// View renders the TUI
func (m StepTUIModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	failed := 0
	for _, step := range m.steps {
		var icon string
		switch step.Status {
		case stepStatusDone:
			icon = m.styles.doneStyle.Render("✓")
		case stepStatusError:
			icon = m.styles.errorStyle.Render("✗")
			failed++
		default:
			icon = m.spinner.View()
		}

		line := fmt.Sprintf("  %s %s", icon, step.Name)
		if step.Status == stepStatusRunning {
			line = fmt.Sprintf("  %s %s", icon, m.styles.spinnerStyle.Render(step.Name+"..."))
		}
		if step.Error != nil {
			line += " " + m.styles.errorStyle.Render("→ "+step.Error.Error())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString("\n")
		if failed > 0 {
			b.WriteString(m.styles.errorStyle.Render("Stopped on a failed step"))
		} else {
			b.WriteString(m.styles.dimStyle.Render(fmt.Sprintf("%d steps completed", len(m.steps))))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RunStepTUI shows the steps arriving on updates until the channel is closed
func RunStepTUI(title string, updates <-chan ProgressUpdate) error {
	program := tea.NewProgram(NewStepTUIModel(title, updates), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	_, err := program.Run()
	return err
}
