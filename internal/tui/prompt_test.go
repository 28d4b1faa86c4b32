package tui

import (
	"fmt"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func parsePositive(input string) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("enter a positive number")
	}
	return n, nil
}

func typeString(m *promptModel, s string) {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		*m = *updated.(*promptModel)
	}
}

func pressEnter(m *promptModel) {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	*m = *updated.(*promptModel)
}

func TestPromptModelAcceptsValidEntry(t *testing.T) {
	m := newPromptModel("title", nil, "help", parsePositive)
	typeString(m, "7")
	pressEnter(m)
	if !m.done {
		t.Fatalf("expected prompt to be done")
	}
	if m.result != 7 {
		t.Fatalf("expected result 7, got %d", m.result)
	}
}

func TestPromptModelRepromptsOnInvalidEntry(t *testing.T) {
	m := newPromptModel("title", nil, "help", parsePositive)
	typeString(m, "nope")
	pressEnter(m)
	if m.done {
		t.Fatalf("expected prompt to stay open on invalid entry")
	}
	if m.errMsg == "" {
		t.Fatalf("expected an error message")
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input to be cleared, got %q", m.input.Value())
	}
	typeString(m, "3")
	pressEnter(m)
	if !m.done || m.result != 3 {
		t.Fatalf("expected result 3 after re-entry, got done=%v result=%d", m.done, m.result)
	}
}

func TestPromptModelAborts(t *testing.T) {
	m := newPromptModel("title", nil, "help", parsePositive)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !updated.(*promptModel).aborted {
		t.Fatalf("expected prompt to abort on esc")
	}
}
