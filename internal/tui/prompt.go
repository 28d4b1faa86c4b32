package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// promptModel is a single inline prompt: a title, a body (candidate table and
// notes), a text input, and a parser that either accepts the entry or reports
// why it was rejected so the user can try again.
type promptModel struct {
	title string
	body  []string
	help  string
	parse func(string) (int, error)

	input   textinput.Model
	errMsg  string
	result  int
	done    bool
	aborted bool
}

func newPromptModel(title string, body []string, help string, parse func(string) (int, error)) *promptModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	input.Focus()
	return &promptModel{
		title: title,
		body:  body,
		help:  help,
		parse: parse,
		input: input,
	}
}

// Init implements tea.Model.
func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			result, err := m.parse(m.input.Value())
			if err != nil {
				m.errMsg = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.result = result
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for _, line := range m.body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help))
	b.WriteString("\n")
	return b.String()
}

func runPrompt(title string, body []string, help string, parse func(string) (int, error)) (int, error) {
	model := newPromptModel(title, body, help, parse)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(*promptModel)
	if !ok || m.aborted {
		return 0, ErrAborted
	}
	return m.result, nil
}
