package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via CARVE_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (CARVE_TEST_NO_INTERACTIVE is set)")

// ErrCanceled is returned when the user cancels a prompt
var ErrCanceled = errors.New("canceled")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("CARVE_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// InteractiveAllowed reports whether prompts can be shown: a terminal is
// attached and prompts are not disabled for testing
func InteractiveAllowed() bool {
	return checkInteractiveAllowed() == nil && IsTTY()
}

// textInputModel is a simple text input prompt model
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	err       error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			m.done = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	return lipgloss.NewStyle().Margin(1, 0).
		Render(fmt.Sprintf("%s\n%s\n\n(Press Enter to submit, Ctrl+C to cancel)", m.prompt, m.textInput.View()))
}

// confirmModel is a simple yes/no confirmation prompt model
type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			m.done = true
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(msg.Runes)) {
			case "y":
				m.choice = true
				m.done = true
				return m, tea.Quit
			case "n":
				m.choice = false
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yesNo := "[y/N]"
	if m.choice {
		yesNo = "[Y/n]"
	}
	return lipgloss.NewStyle().Margin(1, 0).
		Render(fmt.Sprintf("%s %s\n\n(Press y or n, Enter for the default, Ctrl+C to cancel)", m.prompt, yesNo))
}

// PromptTextInput prompts the user for text input
func PromptTextInput(prompt, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	ti := textinput.New()
	ti.SetValue(defaultValue)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	p := tea.NewProgram(textInputModel{textInput: ti, prompt: prompt}, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	finalModel, ok := model.(textInputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if finalModel.err != nil {
		return "", finalModel.err
	}
	return finalModel.textInput.Value(), nil
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	p := tea.NewProgram(confirmModel{prompt: prompt, choice: defaultValue}, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return false, err
	}

	finalModel, ok := model.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	if finalModel.err != nil {
		return false, finalModel.err
	}
	return finalModel.choice, nil
}
